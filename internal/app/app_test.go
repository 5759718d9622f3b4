package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	events  *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Init(ctx context.Context) error {
	*p.events = append(*p.events, "init:"+p.name)
	return p.initErr
}

func (p *recordingPlugin) Close() error {
	*p.events = append(*p.events, "close:"+p.name)
	return nil
}

func TestRunInitializesInOrderAndClosesInReverse(t *testing.T) {
	var events []string
	builder := NewBuilder().
		Plugin(&recordingPlugin{name: "first", events: &events}).
		Plugin(&recordingPlugin{name: "second", events: &events}).
		Plugin(&recordingPlugin{name: "third", events: &events})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, builder.Run(ctx))
	assert.Equal(t, []string{
		"init:first", "init:second", "init:third",
		"close:third", "close:second", "close:first",
	}, events)
}

func TestRunAbortsOnInitFailure(t *testing.T) {
	var events []string
	boom := errors.New("boom")
	builder := NewBuilder().
		Plugin(&recordingPlugin{name: "first", events: &events}).
		Plugin(&recordingPlugin{name: "second", initErr: boom, events: &events}).
		Plugin(&recordingPlugin{name: "third", events: &events})

	err := builder.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "initialize plugin second")

	// third never initialized; only what came up gets closed
	assert.Equal(t, []string{"init:first", "init:second", "close:first"}, events)
}
