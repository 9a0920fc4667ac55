package calc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ccalc/pkg/ast"
)

// Limits applied when none are configured.
const (
	DefaultMaxDepth = 10000
	DefaultMaxNodes = 1 << 24
)

// Options configures Import and Eval.
type Options struct {
	// MaxDepth bounds the depth of the host tree. The root is at depth 0.
	// Zero or negative selects DefaultMaxDepth.
	MaxDepth int
	// MaxNodes bounds the number of nodes, and so the arena size.
	// Zero or negative selects DefaultMaxNodes.
	MaxNodes int
	// Logger receives debug and warning records (optional, uses discard if nil).
	Logger *slog.Logger
}

// Option defines a functional option for Import and Eval.
type Option func(*Options)

// WithMaxDepth sets the maximum tree depth.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithMaxNodes sets the maximum number of nodes in the tree.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		o.MaxNodes = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// NewOptions applies opts and fills in defaults. Hosts that convert trees
// before importing them use it to honour the same limits.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// importer carries the state of one Import call.
type importer struct {
	nodes    ast.Arena
	fixed    bool // nodes was pre-sized from Sizer
	cursor   int  // next free slot, shared by the whole descent
	maxDepth int  // inclusive
	maxNodes int
	path     []byte // 'l'/'r' directions from the root to the current node
}

// Import converts the host tree rooted at root into an arena.
//
// If root implements Sizer the arena is allocated once at the reported size
// and the tree must contain exactly that many nodes. Otherwise the arena
// grows as nodes are reserved. Trees with more than MaxNodes nodes are
// rejected before the arena grows past that size. On failure no arena is
// returned and the error is an *ImportError describing the first problem
// found, depth first and left before right.
func Import(root Source, opts ...Option) (ast.Arena, error) {
	o := NewOptions(opts...)

	im := &importer{maxDepth: o.MaxDepth, maxNodes: o.MaxNodes}
	if sizer, ok := root.(Sizer); ok {
		n, err := countNodes(sizer, o.MaxNodes)
		if err != nil {
			return nil, im.fail(&ImportError{Kind: SizeUnavailable, Err: err}, o.Logger)
		}
		if n <= 0 {
			return nil, im.fail(&ImportError{
				Kind: SizeUnavailable,
				Err:  fmt.Errorf("node count %d", n),
			}, o.Logger)
		}
		if n > o.MaxNodes {
			return nil, im.fail(&ImportError{
				Kind:  NodeLimitExceeded,
				Path:  formatPath(nil),
				Limit: o.MaxNodes,
			}, o.Logger)
		}
		im.nodes = make(ast.Arena, n)
		im.fixed = true
	}

	slot, err := im.reserve()
	if err == nil {
		err = im.importNode(root, slot, 0)
	}
	if err == nil && im.fixed && im.cursor != len(im.nodes) {
		err = &ImportError{Kind: SizeMismatch, Path: formatPath(nil), Limit: len(im.nodes)}
	}
	if err != nil {
		return nil, im.fail(err, o.Logger)
	}

	o.Logger.Debug("imported expression tree", "nodes", len(im.nodes), "presized", im.fixed)
	return im.nodes, nil
}

func countNodes(sizer Sizer, limit int) (int, error) {
	if b, ok := sizer.(BoundedSizer); ok {
		return b.LenAtMost(limit)
	}
	return sizer.Len()
}

func (im *importer) fail(err error, logger *slog.Logger) error {
	logger.Warn("expression import failed", "error", err)
	im.nodes = nil
	return err
}

// reserve hands out the next arena slot.
func (im *importer) reserve() (int, error) {
	slot := im.cursor
	if im.fixed {
		if slot >= len(im.nodes) {
			return 0, &ImportError{Kind: SizeMismatch, Path: formatPath(im.path), Limit: len(im.nodes)}
		}
	} else {
		if slot >= im.maxNodes {
			return 0, &ImportError{Kind: NodeLimitExceeded, Path: formatPath(im.path), Limit: im.maxNodes}
		}
		im.nodes = append(im.nodes, ast.Node{})
	}
	im.cursor++
	return slot, nil
}

func (im *importer) errorAt(kind ErrorKind, field string, err error) *ImportError {
	return &ImportError{Kind: kind, Field: field, Path: formatPath(im.path), Err: err}
}

// importNode writes src into the already reserved slot, then reserves and
// imports its children in left-right order.
func (im *importer) importNode(src Source, slot, depth int) error {
	if depth > im.maxDepth {
		return &ImportError{Kind: DepthExceeded, Path: formatPath(im.path), Limit: im.maxDepth}
	}
	if src == nil {
		return im.errorAt(MissingField, FieldType, nil)
	}

	tag, err := src.ReadType()
	if err != nil {
		if errors.Is(err, ErrNotInteger) {
			return im.errorAt(InvalidNodeType, "", err)
		}
		return im.errorAt(MissingField, FieldType, err)
	}
	kind, ok := ast.KindFromTag(tag)
	if !ok {
		ierr := im.errorAt(InvalidNodeType, "", nil)
		ierr.Tag = tag
		return ierr
	}

	if kind == ast.Literal {
		v, err := src.ReadValue()
		if err != nil {
			if errors.Is(err, ErrNotNumeric) {
				return im.errorAt(InvalidScalar, FieldValue, err)
			}
			return im.errorAt(MissingField, FieldValue, err)
		}
		im.nodes[slot] = ast.LiteralNode(v)
		return nil
	}

	// Both child fields are read before descending into either.
	left, err := src.ReadLeft()
	if err != nil || left == nil {
		return im.errorAt(MissingField, FieldLeft, err)
	}
	right, err := src.ReadRight()
	if err != nil || right == nil {
		return im.errorAt(MissingField, FieldRight, err)
	}

	leftSlot, err := im.descend('l', left, depth)
	if err != nil {
		return err
	}
	rightSlot, err := im.descend('r', right, depth)
	if err != nil {
		return err
	}

	im.nodes[slot] = ast.BinaryNode(kind, leftSlot, rightSlot)
	return nil
}

func (im *importer) descend(dir byte, child Source, depth int) (int, error) {
	im.path = append(im.path, dir)
	defer func() { im.path = im.path[:len(im.path)-1] }()

	slot, err := im.reserve()
	if err != nil {
		return 0, err
	}
	return slot, im.importNode(child, slot, depth+1)
}
