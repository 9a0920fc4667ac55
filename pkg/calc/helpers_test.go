package calc

import "fmt"

// fakeNode is a minimal host node. A nil typ or value means the field is
// absent; non-int64 / non-float64 values exercise the conversion errors.
type fakeNode struct {
	typ   any
	value any
	left  *fakeNode
	right *fakeNode
}

func (n *fakeNode) ReadType() (int64, error) {
	switch v := n.typ.(type) {
	case nil:
		return 0, ErrFieldMissing
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}
}

func (n *fakeNode) ReadValue() (float64, error) {
	switch v := n.value.(type) {
	case nil:
		return 0, ErrFieldMissing
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

func (n *fakeNode) ReadLeft() (Source, error) {
	if n.left == nil {
		return nil, ErrFieldMissing
	}
	return n.left, nil
}

func (n *fakeNode) ReadRight() (Source, error) {
	if n.right == nil {
		return nil, ErrFieldMissing
	}
	return n.right, nil
}

func (n *fakeNode) count() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.count() + n.right.count()
}

// sizedNode reports a node count for the tree rooted at its fakeNode.
type sizedNode struct {
	*fakeNode
	n   int
	err error
}

func (s sizedNode) Len() (int, error) {
	return s.n, s.err
}

// boundedNode records the limit Import passes to LenAtMost.
type boundedNode struct {
	sizedNode
	gotLimit int
}

func (b *boundedNode) LenAtMost(limit int) (int, error) {
	b.gotLimit = limit
	return b.n, b.err
}

func sized(n *fakeNode) sizedNode {
	return sizedNode{fakeNode: n, n: n.count()}
}

func lit(v float64) *fakeNode {
	return &fakeNode{typ: 0, value: v}
}

func add(l, r *fakeNode) *fakeNode {
	return &fakeNode{typ: 1, left: l, right: r}
}

func mul(l, r *fakeNode) *fakeNode {
	return &fakeNode{typ: 2, left: l, right: r}
}

// example1 is (1+2)*3.
func example1() *fakeNode {
	return mul(add(lit(1), lit(2)), lit(3))
}

// example2 is 1+(2*3).
func example2() *fakeNode {
	return add(lit(1), mul(lit(2), lit(3)))
}

// chain builds a left-leaning sum of depth+1 ones.
func chain(depth int) *fakeNode {
	n := lit(1)
	for i := 0; i < depth; i++ {
		n = add(n, lit(1))
	}
	return n
}
