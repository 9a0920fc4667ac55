package calc

import (
	"fmt"

	"github.com/leapstack-labs/ccalc/pkg/ast"
)

// Evaluate folds an arena produced by Import into a single value.
//
// Literals yield their scalar, Add yields left+right and Multiply yields
// left*right, all in float64. Evaluate cannot fail on an arena built by
// Import; a malformed arena (empty, dangling or backward child index, unknown
// kind) is a programming error and panics.
func Evaluate(arena ast.Arena) float64 {
	if len(arena) == 0 {
		panic("calc: evaluate on empty arena")
	}

	// Every child index is greater than its parent's, so sweeping from the
	// end computes both operands of a node before the node itself.
	values := make([]float64, len(arena))
	for i := len(arena) - 1; i >= 0; i-- {
		n := arena[i]
		switch n.Kind {
		case ast.Literal:
			values[i] = n.Scalar
		case ast.Add:
			checkChildren(arena, i)
			values[i] = values[n.Left] + values[n.Right]
		case ast.Multiply:
			checkChildren(arena, i)
			values[i] = values[n.Left] * values[n.Right]
		default:
			panic(fmt.Sprintf("calc: unknown node kind %d at index %d", int(n.Kind), i))
		}
	}
	return values[0]
}

func checkChildren(arena ast.Arena, i int) {
	n := arena[i]
	if n.Left <= i || n.Left >= len(arena) || n.Right <= i || n.Right >= len(arena) {
		panic(fmt.Sprintf("calc: node %d has invalid children (%d, %d)", i, n.Left, n.Right))
	}
}
