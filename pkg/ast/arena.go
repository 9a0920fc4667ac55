package ast

import "fmt"

// Arena holds every node of one tree in pre-order. Index 0 is the root.
type Arena []Node

// Root returns the root node. It panics on an empty arena.
func (a Arena) Root() Node {
	return a[0]
}

// Len returns the number of nodes in the arena.
func (a Arena) Len() int {
	return len(a)
}

// ValidationError describes the first invariant violation found in an Arena.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arena at index %d: %s", e.Index, e.Message)
}

// Validate checks the structural invariants of the arena: every node is well
// formed, children follow their parent, the left subtree starts right after
// the parent, the right subtree starts right after the left one, and the
// root's subtree spans the whole arena.
func (a Arena) Validate() error {
	if len(a) == 0 {
		return &ValidationError{Index: 0, Message: "arena is empty"}
	}

	sizes, err := a.SubtreeSizes()
	if err != nil {
		return err
	}
	if sizes[0] != len(a) {
		return &ValidationError{
			Index:   0,
			Message: fmt.Sprintf("root spans %d of %d nodes", sizes[0], len(a)),
		}
	}
	return nil
}

// SubtreeSizes returns, for each index, the number of nodes in the subtree
// rooted there. Node i's subtree occupies [i, i+sizes[i]).
func (a Arena) SubtreeSizes() ([]int, error) {
	sizes := make([]int, len(a))

	// Children always sit after their parent, so a reverse sweep sees every
	// child before the node that owns it.
	for i := len(a) - 1; i >= 0; i-- {
		n := a[i]
		if !n.WellFormed() {
			return nil, &ValidationError{Index: i, Message: fmt.Sprintf("malformed %s node", n.Kind)}
		}
		if n.Kind == Literal {
			sizes[i] = 1
			continue
		}
		if n.Left != i+1 {
			return nil, &ValidationError{
				Index:   i,
				Message: fmt.Sprintf("left child %d does not follow parent", n.Left),
			}
		}
		if n.Left >= len(a) {
			return nil, &ValidationError{Index: i, Message: fmt.Sprintf("left child %d out of range", n.Left)}
		}
		want := n.Left + sizes[n.Left]
		if n.Right != want {
			return nil, &ValidationError{
				Index:   i,
				Message: fmt.Sprintf("right child %d, expected %d", n.Right, want),
			}
		}
		if n.Right >= len(a) {
			return nil, &ValidationError{Index: i, Message: fmt.Sprintf("right child %d out of range", n.Right)}
		}
		sizes[i] = 1 + sizes[n.Left] + sizes[n.Right]
	}
	return sizes, nil
}
