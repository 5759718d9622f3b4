package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapesRoot is returned for paths that resolve outside the plugin's root.
var ErrPathEscapesRoot = errors.New("path escapes the shell data directory")

// FSPlugin grants the shell controlled filesystem access scoped to a single
// root directory. Callers address files with relative paths; anything that
// resolves outside the root is rejected.
type FSPlugin struct {
	root string
}

func NewFSPlugin(root string) *FSPlugin {
	return &FSPlugin{root: root}
}

func (p *FSPlugin) Name() string { return "fs" }

func (p *FSPlugin) Init(ctx context.Context) error {
	if p.root == "" {
		return fmt.Errorf("fs root is not set")
	}
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return fmt.Errorf("create fs root %s: %w", p.root, err)
	}
	return nil
}

func (p *FSPlugin) Close() error { return nil }

// ReadFile reads a file addressed relative to the root.
func (p *FSPlugin) ReadFile(name string) ([]byte, error) {
	path, err := p.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteFile writes a file addressed relative to the root, creating parent
// directories as needed.
func (p *FSPlugin) WriteFile(name string, data []byte) error {
	path, err := p.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// List returns the entry names of a directory addressed relative to the root.
func (p *FSPlugin) List(name string) ([]string, error) {
	path, err := p.resolve(name)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// resolve maps a relative name onto the root, rejecting absolute paths and
// any traversal that would leave it.
func (p *FSPlugin) resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%s: %w", name, ErrPathEscapesRoot)
	}
	path := filepath.Clean(filepath.Join(p.root, name))
	root := filepath.Clean(p.root)
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", name, ErrPathEscapesRoot)
	}
	return path, nil
}
