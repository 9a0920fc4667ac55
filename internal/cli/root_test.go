package cli

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/ccalc/internal/cli/config"
	"github.com/leapstack-labs/ccalc/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		config.ResetConfig()
		cfgFile = ""
	})

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"eval", "print", "repl", "watch", "hello", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "verbose", "output", "max-depth", "max-nodes", "precision"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Eval(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteTree(t, "tree.yaml", testutil.Example1YAML)

	out, _, err := run(t, "eval", path)
	require.NoError(t, err)
	assert.Equal(t, "9.00\n", out)
}

func TestRootCmd_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteTreeIn(t, dir, "ccalc.yaml", "precision: 4\nmax_depth: 1\n")
	path := testutil.WriteTree(t, "tree.yaml", testutil.Example1YAML)

	_, errOut, err := run(t, "eval", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "tree deeper than 1 levels")

	out, _, err := run(t, "eval", "--max-depth", "5", path)
	require.NoError(t, err)
	assert.Equal(t, "9.0000\n", out)

	out, _, err = run(t, "eval", "--max-depth", "5", "--precision", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "9.0\n", out)
}

func TestRootCmd_VerboseLogging(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteTree(t, "tree.star", testutil.Example2Star)

	out, errOut, err := run(t, "-v", "eval", path)
	require.NoError(t, err)
	assert.Equal(t, "7.00\n", out)
	assert.Contains(t, errOut, "imported expression tree")
	assert.Contains(t, errOut, "evaluated tree")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "-o", "xml", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestRootCmd_Completion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "ccalc")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}
