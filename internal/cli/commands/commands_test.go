package commands

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/ccalc/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// useConfig loads configuration from CCALC_* variables for one test.
func useConfig(t *testing.T, env map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for k, v := range env {
		t.Setenv(k, v)
	}
	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	t.Cleanup(config.ResetConfig)
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewEvalCommand(), use: "eval <file>...", flags: []string{"validate", "jobs"}},
		{cmd: NewPrintCommand(), use: "print <file>", flags: []string{"arena"}},
		{cmd: NewREPLCommand(), use: "repl", flags: []string{"history", "tree"}},
		{cmd: NewWatchCommand(), use: "watch <file>"},
		{cmd: NewHelloCommand(), use: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestHelloCommand(t *testing.T) {
	out, _, err := execute(t, NewHelloCommand())
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!\n", out)

	_, _, err = execute(t, NewHelloCommand(), "extra")
	assert.Error(t, err)
}

func TestGetConfig_Defaults(t *testing.T) {
	config.ResetConfig()
	assert.Equal(t, config.Default(), getConfig())
}
