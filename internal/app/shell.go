package app

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
)

// ErrProgramNotAllowed is returned for programs outside the shell allow-list.
var ErrProgramNotAllowed = errors.New("program is not on the shell allow-list")

// ShellPlugin grants controlled invocation of external processes. Only
// programs named at construction may be started.
type ShellPlugin struct {
	allowed map[string]struct{}
}

func NewShellPlugin(programs ...string) *ShellPlugin {
	allowed := make(map[string]struct{}, len(programs))
	for _, prog := range programs {
		allowed[prog] = struct{}{}
	}
	return &ShellPlugin{allowed: allowed}
}

func (p *ShellPlugin) Name() string { return "shell" }

func (p *ShellPlugin) Init(ctx context.Context) error { return nil }

func (p *ShellPlugin) Close() error { return nil }

// Command builds an exec.Cmd for an allow-listed program.
func (p *ShellPlugin) Command(ctx context.Context, program string, args ...string) (*exec.Cmd, error) {
	if _, ok := p.allowed[program]; !ok {
		return nil, fmt.Errorf("%s: %w", program, ErrProgramNotAllowed)
	}
	return exec.CommandContext(ctx, program, args...), nil
}

// Allowed returns the allow-listed program names, sorted.
func (p *ShellPlugin) Allowed() []string {
	programs := make([]string, 0, len(p.allowed))
	for prog := range p.allowed {
		programs = append(programs, prog)
	}
	sort.Strings(programs)
	return programs
}
