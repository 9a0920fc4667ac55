// Package starlark exposes expression trees to Starlark scripts and reads
// Starlark values back as calc sources.
package starlark

import (
	"fmt"
	"math"
	"sort"

	"github.com/leapstack-labs/ccalc/pkg/ast"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Node is an immutable expression node built by the Literal, Plus and
// Multiply builtins. Nodes support + and * with other nodes and with plain
// numbers, which are wrapped as literals.
type Node struct {
	kind  ast.Kind
	value float64
	left  *Node
	right *Node
	size  int // nodes in this subtree, saturating at math.MaxInt
}

var (
	_ starlark.HasAttrs  = (*Node)(nil)
	_ starlark.HasBinary = (*Node)(nil)
)

// NewLiteral returns a literal node.
func NewLiteral(v float64) *Node {
	return &Node{kind: ast.Literal, value: v, size: 1}
}

// NewBinary returns an Add or Multiply node.
func NewBinary(kind ast.Kind, left, right *Node) *Node {
	return &Node{kind: kind, left: left, right: right, size: subtreeSize(left.size, right.size)}
}

// subtreeSize adds the parent to its children's sizes. Shared subtrees
// double the size at every level, so the sum saturates instead of wrapping.
func subtreeSize(left, right int) int {
	return addSizes(1, addSizes(left, right))
}

func addSizes(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Kind returns the node kind.
func (n *Node) Kind() ast.Kind { return n.kind }

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int { return n.size }

// className mirrors the host-side class names.
func (n *Node) className() string {
	switch n.kind {
	case ast.Add:
		return "Plus"
	case ast.Multiply:
		return "Multiply"
	default:
		return "Literal"
	}
}

// String renders the node as Literal<1.0> or Plus<Literal<1.0>, Literal<2.0>>.
func (n *Node) String() string {
	if n.kind == ast.Literal {
		return fmt.Sprintf("%s<%s>", n.className(), starlark.Float(n.value).String())
	}
	return fmt.Sprintf("%s<%s, %s>", n.className(), n.left.String(), n.right.String())
}

// Type implements starlark.Value.
func (n *Node) Type() string { return n.className() }

// Freeze implements starlark.Value. Nodes are immutable.
func (n *Node) Freeze() {}

// Truth implements starlark.Value.
func (n *Node) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (n *Node) Hash() (uint32, error) {
	return starlark.String(n.String()).Hash()
}

var nodeAttrNames = func() []string {
	names := []string{"type", "value", "left", "right"}
	sort.Strings(names)
	return names
}()

// Attr implements starlark.HasAttrs. Fields that do not apply to the node's
// kind are None.
func (n *Node) Attr(name string) (starlark.Value, error) {
	switch name {
	case "type":
		return starlark.MakeInt(int(n.kind)), nil
	case "value":
		if n.kind != ast.Literal {
			return starlark.None, nil
		}
		return starlark.Float(n.value), nil
	case "left":
		if n.left == nil {
			return starlark.None, nil
		}
		return n.left, nil
	case "right":
		if n.right == nil {
			return starlark.None, nil
		}
		return n.right, nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (n *Node) AttrNames() []string { return nodeAttrNames }

// Binary implements starlark.HasBinary for + and *.
func (n *Node) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	var kind ast.Kind
	switch op {
	case syntax.PLUS:
		kind = ast.Add
	case syntax.STAR:
		kind = ast.Multiply
	default:
		return nil, nil
	}

	other, err := toNode(y)
	if err != nil {
		// Unsupported operand: let Starlark report the type error.
		return nil, nil
	}
	if side == starlark.Left {
		return NewBinary(kind, n, other), nil
	}
	return NewBinary(kind, other, n), nil
}

// toNode accepts a Node or a plain number.
func toNode(v starlark.Value) (*Node, error) {
	switch x := v.(type) {
	case *Node:
		return x, nil
	case starlark.Int, starlark.Float:
		f, _ := starlark.AsFloat(x)
		return NewLiteral(f), nil
	default:
		return nil, fmt.Errorf("type '%s' is not a valid literal", v.Type())
	}
}
