package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	prev := version
	defer SetVersion(prev)
	SetVersion("1.2.3")

	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "docfeed version 1.2.3")
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docfeed", rootCmd.Use)
}

func TestRootCmd_HasCommands(t *testing.T) {
	commands := rootCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "run")
	assert.Contains(t, names, "fetch")
	assert.Contains(t, names, "extract")
	assert.Contains(t, names, "classify")
	assert.Contains(t, names, "info")
	assert.Contains(t, names, "history")
	assert.Contains(t, names, "watch")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}
