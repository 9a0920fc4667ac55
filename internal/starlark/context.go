package starlark

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/ccalc/pkg/calc"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// TreeGlobal is the global a tree script must assign its expression to.
const TreeGlobal = "tree"

// ExecutionContext evaluates tree scripts and REPL expressions against the
// builtins from Predeclared.
type ExecutionContext struct {
	globals starlark.StringDict
	out     io.Writer // receives print() and hello_world() output
}

// ContextOption is a functional option for configuring ExecutionContext.
type ContextOption func(*ExecutionContext)

// WithOutput sets where print() output goes (default: os.Stderr).
func WithOutput(w io.Writer) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.out = w
	}
}

// WithCalcOptions forwards import options to eval_ast().
func WithCalcOptions(opts ...calc.Option) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.globals = Predeclared(opts...)
	}
}

// NewContext creates a new execution context with functional options.
func NewContext(opts ...ContextOption) *ExecutionContext {
	ctx := &ExecutionContext{
		globals: Predeclared(),
		out:     os.Stderr,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Globals returns the predeclared builtins.
func (ctx *ExecutionContext) Globals() starlark.StringDict {
	return ctx.globals
}

var fileOptions = &syntax.FileOptions{}

// EvalExpr evaluates a single Starlark expression and returns the result.
func (ctx *ExecutionContext) EvalExpr(expr string, filename string) (starlark.Value, error) {
	thread := newThread(filename, ctx.out)
	result, err := starlark.EvalOptions(fileOptions, thread, filename, expr, ctx.globals)
	if err != nil {
		return nil, &EvalError{File: filename, Expr: expr, Message: err.Error()}
	}
	return result, nil
}

// ExecFile runs a script and returns its globals. src may be nil, in which
// case the file at path is read.
func (ctx *ExecutionContext) ExecFile(path string, src any) (starlark.StringDict, error) {
	thread := newThread(path, ctx.out)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, path, src, ctx.globals)
	if err != nil {
		return nil, &EvalError{File: path, Message: err.Error()}
	}
	return globals, nil
}

// LoadTree runs a script and returns the value it assigns to "tree".
func (ctx *ExecutionContext) LoadTree(path string, src any) (Source, error) {
	globals, err := ctx.ExecFile(path, src)
	if err != nil {
		return Source{}, err
	}
	tree, ok := globals[TreeGlobal]
	if !ok {
		return Source{}, fmt.Errorf("%s: script does not define %q", path, TreeGlobal)
	}
	return FromValue(tree), nil
}

// EvalError represents an error during Starlark evaluation.
type EvalError struct {
	File    string
	Expr    string
	Message string
}

func (e *EvalError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s: error evaluating %q: %s", e.File, e.Expr, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}
