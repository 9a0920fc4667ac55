package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies import failures.
type ErrorKind int

// ErrorKind constants.
const (
	// SizeUnavailable means the tree's node count could not be determined.
	SizeUnavailable ErrorKind = iota + 1
	// MissingField means a required field could not be read from a node.
	MissingField
	// InvalidNodeType means a "type" tag is outside the recognized set.
	InvalidNodeType
	// InvalidScalar means a literal's "value" is not numeric.
	InvalidScalar
	// DepthExceeded means the tree is deeper than the configured limit.
	DepthExceeded
	// SizeMismatch means the reported node count disagrees with the tree.
	SizeMismatch
	// NodeLimitExceeded means the tree has more nodes than the configured limit.
	NodeLimitExceeded
)

var errorKindNames = map[ErrorKind]string{
	SizeUnavailable:   "size unavailable",
	MissingField:      "missing field",
	InvalidNodeType:   "invalid node type",
	InvalidScalar:     "invalid scalar",
	DepthExceeded:     "depth exceeded",
	SizeMismatch:      "size mismatch",
	NodeLimitExceeded: "node limit exceeded",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ImportError describes the first failure encountered while importing a
// host tree. Path locates the offending node, e.g. "root.left.right".
type ImportError struct {
	Kind  ErrorKind
	Field string // field name for MissingField
	Path  string
	Tag   int64 // offending tag for InvalidNodeType
	Limit int   // bound for DepthExceeded, SizeMismatch and NodeLimitExceeded
	Err   error // underlying host error, if any
}

func (e *ImportError) Error() string {
	var sb strings.Builder
	sb.WriteString("import error: ")
	switch e.Kind {
	case MissingField:
		fmt.Fprintf(&sb, "missing field %q", e.Field)
	case InvalidNodeType:
		if e.Err != nil {
			sb.WriteString("invalid node type")
		} else {
			fmt.Fprintf(&sb, "invalid node type %d", e.Tag)
		}
	case DepthExceeded:
		fmt.Fprintf(&sb, "tree deeper than %d levels", e.Limit)
	case SizeMismatch:
		fmt.Fprintf(&sb, "tree does not match its reported size of %d nodes", e.Limit)
	case NodeLimitExceeded:
		fmt.Fprintf(&sb, "tree has more than %d nodes", e.Limit)
	default:
		sb.WriteString(e.Kind.String())
	}
	if e.Path != "" {
		fmt.Fprintf(&sb, " at %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of the first ImportError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ierr *ImportError
	if errors.As(err, &ierr) {
		return ierr.Kind
	}
	return 0
}

// maxPathSegments bounds the rendered length of ImportError.Path.
const maxPathSegments = 32

// formatPath renders the directions taken from the root ('l' or 'r').
func formatPath(dirs []byte) string {
	var sb strings.Builder
	sb.WriteString("root")
	for i, d := range dirs {
		if i == maxPathSegments {
			fmt.Fprintf(&sb, "...(+%d)", len(dirs)-i)
			break
		}
		if d == 'l' {
			sb.WriteString("." + FieldLeft)
		} else {
			sb.WriteString("." + FieldRight)
		}
	}
	return sb.String()
}
