package starlark

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Predeclared returns the builtins available to tree scripts:
//
//	Literal(value)            literal node, value must be int or float
//	Plus(left, right)         addition node (alias: Add)
//	Multiply(left, right)     multiplication node
//	LITERAL, PLUS, MULTIPLY   the integer type tags
//	struct(**fields)          hand-built node, e.g. struct(type=0, value=1)
//	eval_ast(node)            import and evaluate a tree
//	hello_world()             prints "Hello, World!"
//
// Options are forwarded to calc.Eval by eval_ast.
func Predeclared(opts ...calc.Option) starlark.StringDict {
	return starlark.StringDict{
		"Literal":     starlark.NewBuiltin("Literal", literal),
		"Plus":        starlark.NewBuiltin("Plus", binary(ast.Add)),
		"Add":         starlark.NewBuiltin("Add", binary(ast.Add)),
		"Multiply":    starlark.NewBuiltin("Multiply", binary(ast.Multiply)),
		"LITERAL":     starlark.MakeInt(int(ast.Literal)),
		"PLUS":        starlark.MakeInt(int(ast.Add)),
		"MULTIPLY":    starlark.MakeInt(int(ast.Multiply)),
		"struct":      starlark.NewBuiltin("struct", starlarkstruct.Make),
		"eval_ast":    starlark.NewBuiltin("eval_ast", evalAST(opts)),
		"hello_world": starlark.NewBuiltin("hello_world", helloWorld),
	}
}

func literal(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case starlark.Int, starlark.Float:
		f, _ := starlark.AsFloat(v)
		return NewLiteral(f), nil
	default:
		return nil, fmt.Errorf("%s: type '%s' is not a valid literal", b.Name(), v.Type())
	}
}

func binary(kind ast.Kind) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var l, r starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "left", &l, "right", &r); err != nil {
			return nil, err
		}
		left, err := toNode(l)
		if err != nil {
			return nil, fmt.Errorf("%s: left: %w", b.Name(), err)
		}
		right, err := toNode(r)
		if err != nil {
			return nil, fmt.Errorf("%s: right: %w", b.Name(), err)
		}
		return NewBinary(kind, left, right), nil
	}
}

func evalAST(opts []calc.Option) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &v); err != nil {
			return nil, err
		}
		result, err := calc.Eval(FromValue(v), opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return starlark.Float(result), nil
	}
}

func helloWorld(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if thread.Print != nil {
		thread.Print(thread, HelloWorld)
	} else {
		fmt.Fprintln(os.Stderr, HelloWorld)
	}
	return starlark.None, nil
}

// HelloWorld is the greeting printed by hello_world().
const HelloWorld = "Hello, World!"
