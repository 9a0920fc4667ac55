package starlark

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ccalc/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestContext_EvalExpr(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalExpr("PLUS", "test")
	require.NoError(t, err)
	assert.Equal(t, starlark.MakeInt(1), v)

	_, err = ctx.EvalExpr("undefined_name", "test")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "undefined_name", evalErr.Expr)
	assert.Contains(t, err.Error(), `test: error evaluating "undefined_name"`)
}

func TestContext_LoadTree(t *testing.T) {
	ctx := NewContext()

	src := `
a = Plus(1, 2)
tree = Multiply(a, 3)
`
	s, err := ctx.LoadTree("tree.star", src)
	require.NoError(t, err)

	got, err := calc.Eval(s)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)
}

func TestContext_LoadTreeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.star")
	require.NoError(t, os.WriteFile(path, []byte("tree = Plus(Literal(1), Multiply(2, 3))\n"), 0o600))

	s, err := NewContext().LoadTree(path, nil)
	require.NoError(t, err)

	got, err := calc.Eval(s)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestContext_LoadTreeErrors(t *testing.T) {
	ctx := NewContext()

	_, err := ctx.LoadTree("empty.star", "x = 1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `does not define "tree"`)

	_, err = ctx.LoadTree("bad.star", "tree = Literal(\n")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "bad.star", evalErr.File)
}

func TestContext_PrintOutput(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))

	_, err := ctx.ExecFile("print.star", `print("one")
print("two")
`)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestEvalError_Error(t *testing.T) {
	assert.Equal(t, "f.star: boom", (&EvalError{File: "f.star", Message: "boom"}).Error())
	assert.Equal(t, `f.star: error evaluating "1 +": boom`,
		(&EvalError{File: "f.star", Expr: "1 +", Message: "boom"}).Error())
}
