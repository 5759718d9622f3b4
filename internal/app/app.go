// Package app composes the shell plugins and hands control to the runtime.
//
// The builder is constructed once from the entry point, before anything else
// runs. Plugins initialize in registration order and tear down in reverse;
// the first initialization failure aborts startup after closing whatever had
// already come up.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Plugin is one shell capability attached to the runtime.
type Plugin interface {
	Name() string
	Init(ctx context.Context) error
	Close() error
}

// Builder collects plugins for a single run of the shell.
type Builder struct {
	plugins []Plugin
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Plugin appends p to the composition. Order matters: p initializes after
// everything registered before it.
func (b *Builder) Plugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// Run initializes every plugin in order, blocks until ctx is cancelled, then
// closes them in reverse order.
func (b *Builder) Run(ctx context.Context) error {
	initialized, err := b.start(ctx)
	if err != nil {
		closeAll(initialized)
		return err
	}

	log.Info("Shell running.")
	<-ctx.Done()

	log.Info("Shutting down.")
	closeAll(initialized)
	return nil
}

func (b *Builder) start(ctx context.Context) ([]Plugin, error) {
	var initialized []Plugin
	for _, p := range b.plugins {
		log.WithField("plugin", p.Name()).Debug("Initializing plugin.")
		if err := p.Init(ctx); err != nil {
			return initialized, fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		initialized = append(initialized, p)
	}
	return initialized, nil
}

func closeAll(plugins []Plugin) {
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Close(); err != nil {
			log.WithField("plugin", p.Name()).Warnf("Error closing plugin: %v", err)
		}
	}
}
