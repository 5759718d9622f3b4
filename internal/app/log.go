package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LogPlugin configures the process-wide logrus sink.
type LogPlugin struct {
	level string
}

func NewLogPlugin(level string) *LogPlugin {
	return &LogPlugin{level: level}
}

func (p *LogPlugin) Name() string { return "log" }

func (p *LogPlugin) Init(ctx context.Context) error {
	level, err := log.ParseLevel(p.level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", p.level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

func (p *LogPlugin) Close() error { return nil }
