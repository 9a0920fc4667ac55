package starlark

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/ccalc/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestPredeclared_Names(t *testing.T) {
	globals := Predeclared()
	for _, name := range []string{
		"Literal", "Plus", "Add", "Multiply",
		"LITERAL", "PLUS", "MULTIPLY",
		"struct", "eval_ast", "hello_world",
	} {
		assert.Contains(t, globals, name)
	}
}

func TestLiteral_RejectsNonNumbers(t *testing.T) {
	ctx := NewContext()

	tests := []string{`Literal("x")`, `Literal(True)`, `Literal(None)`, `Plus("a", 1)`, `Multiply(1, [])`}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := ctx.EvalExpr(expr, "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is not a valid literal")
		})
	}
}

func TestEvalAST(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalExpr("eval_ast(Multiply(Plus(1, 2), 3))", "test")
	require.NoError(t, err)
	assert.Equal(t, starlark.Float(9), v)

	v, err = ctx.EvalExpr("eval_ast(struct(type=0, value=-2))", "test")
	require.NoError(t, err)
	assert.Equal(t, starlark.Float(-2), v)

	_, err = ctx.EvalExpr("eval_ast(struct(type=99))", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid node type 99")
}

func TestEvalAST_ForwardsOptions(t *testing.T) {
	ctx := NewContext(WithCalcOptions(calc.WithMaxDepth(1)))

	_, err := ctx.EvalExpr("eval_ast(Plus(1, 2))", "test")
	require.NoError(t, err)

	_, err = ctx.EvalExpr("eval_ast(Plus(Plus(1, 2), 3))", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tree deeper than 1 levels")
}

func TestHelloWorld(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))

	v, err := ctx.EvalExpr("hello_world()", "test")
	require.NoError(t, err)
	assert.Equal(t, starlark.None, v)
	assert.Equal(t, HelloWorld+"\n", out.String())

	_, err = ctx.EvalExpr("hello_world(1)", "test")
	require.Error(t, err)
}
