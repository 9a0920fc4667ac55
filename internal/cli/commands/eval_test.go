package commands

import (
	"math"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/leapstack-labs/ccalc/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCommand_SingleFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "yaml", file: "tree.yaml", content: testutil.Example1YAML, want: "9.00\n"},
		{name: "json", file: "tree.json", content: testutil.Example2JSON, want: "7.00\n"},
		{name: "lua", file: "tree.lua", content: testutil.Example1Lua, want: "9.00\n"},
		{name: "starlark", file: "tree.star", content: testutil.Example2Star, want: "7.00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTree(t, tt.file, tt.content)
			out, errOut, err := execute(t, NewEvalCommand(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Empty(t, errOut)
			testutil.AssertNoANSI(t, out)
		})
	}
}

func TestEvalCommand_MultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	var args []string
	var want string
	for i, content := range []string{testutil.Example1YAML, testutil.Example2JSON, testutil.Example1Lua, testutil.Example2Star} {
		name := []string{"a.yaml", "b.json", "c.lua", "d.star"}[i]
		path := testutil.WriteTreeIn(t, dir, name, content)
		args = append(args, path)
		want += path + ": " + []string{"9.00", "7.00", "9.00", "7.00"}[i] + "\n"
	}

	out, _, err := execute(t, NewEvalCommand(), append([]string{"--validate", "-j", "2"}, args...)...)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestEvalCommand_Errors(t *testing.T) {
	good := testutil.WriteTree(t, "good.yaml", testutil.Example1YAML)
	bad := testutil.WriteTree(t, "bad.yaml", testutil.MissingRightYAML)

	out, errOut, err := execute(t, NewEvalCommand(), good, bad)
	require.Error(t, err)
	assert.EqualError(t, err, "1 of 2 tree(s) failed")
	assert.Equal(t, good+": 9.00\n", out)
	assert.Contains(t, errOut, `missing field "right" at root`)
	assert.Contains(t, errOut, bad)

	_, _, err = execute(t, NewEvalCommand())
	assert.Error(t, err, "at least one file is required")

	_, errOut, err = execute(t, NewEvalCommand(), filepath.Join(t.TempDir(), "tree.txt"))
	require.Error(t, err)
	assert.Contains(t, errOut, "unsupported tree file")
}

func TestEvalCommand_MaxDepth(t *testing.T) {
	useConfig(t, map[string]string{"CCALC_MAX_DEPTH": "1"})
	path := testutil.WriteTree(t, "tree.yaml", testutil.Example1YAML)

	_, errOut, err := execute(t, NewEvalCommand(), path)
	require.Error(t, err)
	assert.Contains(t, errOut, "tree deeper than 1 levels at root.left.left")
}

// doubledStar builds a tree of depth 60 whose subtrees are shared, so it
// reports far more nodes than any arena could hold.
const doubledStar = `
def grow(n):
    a = Literal(1)
    for _ in range(n):
        a = a + a
    return a

tree = grow(60)
`

func TestEvalCommand_NodeLimit(t *testing.T) {
	useConfig(t, nil)
	big := testutil.WriteTree(t, "big.star", doubledStar)
	good := testutil.WriteTree(t, "good.yaml", testutil.Example1YAML)

	out, errOut, err := execute(t, NewEvalCommand(), "--jobs", "2", big, good)
	require.Error(t, err)
	assert.EqualError(t, err, "1 of 2 tree(s) failed")
	assert.Equal(t, good+": 9.00\n", out)
	assert.Contains(t, errOut, "tree has more than 16777216 nodes at root")

	useConfig(t, map[string]string{"CCALC_MAX_NODES": "4"})
	_, errOut, err = execute(t, NewEvalCommand(), good)
	require.Error(t, err)
	assert.Contains(t, errOut, "tree has more than 4 nodes")
}

func TestEvalCommand_Precision(t *testing.T) {
	useConfig(t, map[string]string{"CCALC_PRECISION": "0"})
	path := testutil.WriteTree(t, "tree.star", "tree = Plus(0.25, 0.5)\n")

	out, _, err := execute(t, NewEvalCommand(), path)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestEvalCommand_JSON(t *testing.T) {
	useConfig(t, map[string]string{"CCALC_OUTPUT": "json"})
	good := testutil.WriteTree(t, "good.yaml", testutil.Example1YAML)
	bad := testutil.WriteTree(t, "bad.yaml", testutil.MissingRightYAML)

	out, _, err := execute(t, NewEvalCommand(), good, bad)
	require.Error(t, err)

	var results []map[string]any
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, good, results[0]["file"])
	assert.Equal(t, 9.0, results[0]["value"])
	assert.Equal(t, 5.0, results[0]["nodes"])
	assert.NotContains(t, results[0], "error")

	assert.Equal(t, bad, results[1]["file"])
	assert.NotContains(t, results[1], "value")
	assert.Contains(t, results[1]["error"], "missing field")
}

func TestJSONFloat(t *testing.T) {
	assert.Equal(t, 1.5, jsonFloat(1.5))
	assert.Equal(t, "NaN", jsonFloat(math.NaN()))
	assert.Equal(t, "+Inf", jsonFloat(math.Inf(1)))
	assert.Equal(t, "-Inf", jsonFloat(math.Inf(-1)))
}
