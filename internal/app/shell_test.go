package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellPluginAllowsListedPrograms(t *testing.T) {
	plugin := NewShellPlugin("xdg-open", "open")

	cmd, err := plugin.Command(context.Background(), "xdg-open", "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "https://example.com")
}

func TestShellPluginRejectsUnlistedPrograms(t *testing.T) {
	plugin := NewShellPlugin("xdg-open")

	_, err := plugin.Command(context.Background(), "rm", "-rf", "/")
	assert.ErrorIs(t, err, ErrProgramNotAllowed)
}

func TestShellPluginAllowedIsSorted(t *testing.T) {
	plugin := NewShellPlugin("open", "xdg-open")
	assert.Equal(t, []string{"open", "xdg-open"}, plugin.Allowed())
}
