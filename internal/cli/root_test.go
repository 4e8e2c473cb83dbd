package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	err := root.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_Help(t *testing.T) {
	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	err := root.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "check")
	assert.Contains(t, output, "config")
	assert.Contains(t, output, "--config")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	c, _ := newTestContainer(t)
	writeTestConfig(t, c, "[generation]\nlabel = \"active\"\nlabl = \"x\"\n")

	root := NewRootCommand(c, "test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"config", "show"})

	err := root.Execute()

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Warning: unknown key in [generation]: labl")
}

func TestNewRootCommand_ConfigFlag(t *testing.T) {
	c, _ := newTestContainer(t)

	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", "custom.toml", "config", "init"})

	err := root.Execute()

	require.NoError(t, err)
	assert.FileExists(t, c.Config.ConfigPath)
	assert.Contains(t, c.Config.ConfigPath, "custom.toml")
}
