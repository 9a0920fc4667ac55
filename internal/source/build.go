package source

import "github.com/leapstack-labs/ccalc/pkg/ast"

// Literal returns a document node for a literal value.
func Literal(v float64) map[string]any {
	return map[string]any{"type": int(ast.Literal), "value": v}
}

// Plus returns a document node adding left and right.
func Plus(left, right map[string]any) map[string]any {
	return map[string]any{"type": int(ast.Add), "left": left, "right": right}
}

// Multiply returns a document node multiplying left and right.
func Multiply(left, right map[string]any) map[string]any {
	return map[string]any{"type": int(ast.Multiply), "left": left, "right": right}
}
