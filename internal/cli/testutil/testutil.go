// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/ccalc/internal/cli/output"
)

// Tree fixtures: (1 + 2) * 3 and 1 + 2 * 3 in each supported format.
const (
	Example1YAML = `type: 2
left:
  type: 1
  left: {type: 0, value: 1}
  right: {type: 0, value: 2}
right: {type: 0, value: 3}
`
	Example2JSON = `{"type": 1, "left": {"type": 0, "value": 1},
 "right": {"type": 2, "left": {"type": 0, "value": 2}, "right": {"type": 0, "value": 3}}}
`
	Example1Lua = `return { type = 2,
  left = { type = 1, left = { type = 0, value = 1 }, right = { type = 0, value = 2 } },
  right = { type = 0, value = 3 } }
`
	Example2Star = "tree = Literal(1) + 2 * 3\n"

	// MissingRightYAML is an Add node without a right child.
	MissingRightYAML = "type: 1\nleft: {type: 0, value: 1}\n"
)

// WriteTree writes a tree file into a fresh temporary directory and returns
// its path.
func WriteTree(t *testing.T, name, content string) string {
	t.Helper()
	return WriteTreeIn(t, t.TempDir(), name, content)
}

// WriteTreeIn writes a tree file into dir and returns its path.
func WriteTreeIn(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
