package calc

import "errors"

// Source is the read-only view of one host tree node.
//
// Implementations report an absent field with ErrFieldMissing, a "value"
// that is present but not numeric with ErrNotNumeric, and a "type" that is
// present but not an integer with ErrNotInteger. Other errors are treated as
// an unreadable field.
type Source interface {
	// ReadType returns the node's integer "type" tag.
	ReadType() (int64, error)
	// ReadValue returns the numeric "value" of a literal node.
	ReadValue() (float64, error)
	// ReadLeft returns the "left" child of an operator node.
	ReadLeft() (Source, error)
	// ReadRight returns the "right" child of an operator node.
	ReadRight() (Source, error)
}

// Sizer is implemented by hosts that know the total node count of the tree
// rooted at a node. Import uses it to size the arena up front; hosts that do
// not implement it get a growable arena instead.
type Sizer interface {
	Len() (int, error)
}

// BoundedSizer is a Sizer that can stop counting once the tree is known to
// be larger than limit. LenAtMost then returns any count above limit.
// Import prefers it over Len so that shared or very large host trees are
// rejected without being walked in full.
type BoundedSizer interface {
	Sizer
	LenAtMost(limit int) (int, error)
}

// Sentinel errors returned by Source implementations.
var (
	ErrFieldMissing = errors.New("field missing")
	ErrNotNumeric   = errors.New("value is not numeric")
	ErrNotInteger   = errors.New("value is not an integer")
)

// Field names of the host node layout.
const (
	FieldType  = "type"
	FieldValue = "value"
	FieldLeft  = "left"
	FieldRight = "right"
)
