package ast

import (
	"fmt"
	"io"
	"strings"
)

// DefaultPrecision is the number of decimals Fprint uses for literals.
const DefaultPrecision = 2

// Fprint writes an indented, one-node-per-line rendering of the arena:
//
//	*
//	  +
//	    1.00
//	    2.00
//	  3.00
//
// Each level is indented by two spaces. Operators print their symbol,
// literals print their value with the given number of decimals. Arenas
// that fail Validate are rejected before anything is written.
func Fprint(w io.Writer, a Arena, precision int) error {
	if len(a) == 0 {
		return nil
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	// A valid arena is a tree laid out in pre-order, so the walk below
	// visits each index once.
	if err := a.Validate(); err != nil {
		return err
	}

	type frame struct {
		index int
		level int
	}

	stack := []frame{{index: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := a[f.index]

		var line string
		if n.Kind == Literal {
			line = fmt.Sprintf("%.*f", precision, n.Scalar)
		} else {
			line = n.Kind.Symbol()
			// Right is pushed first so the left subtree prints first.
			stack = append(stack, frame{n.Right, f.level + 1}, frame{n.Left, f.level + 1})
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", f.level), line); err != nil {
			return err
		}
	}
	return nil
}

// Sprint is like Fprint but returns the rendering as a string.
func Sprint(a Arena, precision int) string {
	var sb strings.Builder
	_ = Fprint(&sb, a, precision)
	return sb.String()
}
