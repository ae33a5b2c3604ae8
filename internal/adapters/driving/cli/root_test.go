package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "ingest", "chat", "mcp", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docent", rootCmd.Use)
}
