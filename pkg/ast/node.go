package ast

import (
	"fmt"
	"math"
)

// Kind identifies the type of a node.
// The numeric values double as the host-side "type" tags.
type Kind int

// Kind constants. The set is closed: adding a kind requires a new tag and a
// new branch in the evaluator.
const (
	Literal Kind = iota
	Add
	Multiply
)

// NoChild marks an absent child index on literal nodes.
const NoChild = -1

var kindNames = map[Kind]string{
	Literal:  "Literal",
	Add:      "Add",
	Multiply: "Multiply",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Symbol returns the operator symbol, or "" for literals.
func (k Kind) Symbol() string {
	switch k {
	case Add:
		return "+"
	case Multiply:
		return "*"
	default:
		return ""
	}
}

// IsOperator reports whether k is a binary operator kind.
func (k Kind) IsOperator() bool {
	return k == Add || k == Multiply
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// KindFromTag converts a host "type" tag into a Kind.
func KindFromTag(tag int64) (Kind, bool) {
	if tag < int64(Literal) || tag > int64(Multiply) {
		return 0, false
	}
	return Kind(tag), true
}

// Node is a single entry of an Arena.
type Node struct {
	Kind   Kind
	Scalar float64 // literal value, zero for operators
	Left   int     // arena index of the left child, NoChild for literals
	Right  int     // arena index of the right child, NoChild for literals
}

// LiteralNode returns a leaf node carrying v.
func LiteralNode(v float64) Node {
	return Node{Kind: Literal, Scalar: v, Left: NoChild, Right: NoChild}
}

// BinaryNode returns an operator node with the given child indices.
func BinaryNode(kind Kind, left, right int) Node {
	return Node{Kind: kind, Left: left, Right: right}
}

// WellFormed reports whether n has exactly the fields its kind requires:
// literals carry no children, operators carry two distinct children and
// no scalar.
func (n Node) WellFormed() bool {
	switch n.Kind {
	case Literal:
		return n.Left == NoChild && n.Right == NoChild
	case Add, Multiply:
		if n.Left < 0 || n.Right < 0 || n.Left == n.Right {
			return false
		}
		return n.Scalar == 0 && !math.Signbit(n.Scalar)
	default:
		return false
	}
}

// String returns a compact description of the node, mainly for debugging.
func (n Node) String() string {
	if n.Kind == Literal {
		return fmt.Sprintf("Literal(%g)", n.Scalar)
	}
	return fmt.Sprintf("%s(%d, %d)", n.Kind, n.Left, n.Right)
}
