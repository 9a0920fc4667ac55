package starlark

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
	"go.starlark.net/starlark"
)

// Source reads any Starlark value with attributes (a Node, a struct(...),
// a module) as a calc.Source.
type Source struct {
	v starlark.Value
}

var (
	_ calc.Source       = Source{}
	_ calc.BoundedSizer = Source{}
)

// FromValue wraps a Starlark value.
func FromValue(v starlark.Value) Source {
	return Source{v: v}
}

func attr(v starlark.Value, name string) (starlark.Value, error) {
	obj, ok := v.(starlark.HasAttrs)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", calc.ErrFieldMissing, name, v.Type())
	}
	val, err := obj.Attr(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", calc.ErrFieldMissing, name, err)
	}
	if val == nil || val == starlark.None {
		return nil, fmt.Errorf("%w: %q", calc.ErrFieldMissing, name)
	}
	return val, nil
}

// ReadType implements calc.Source.
func (s Source) ReadType() (int64, error) {
	v, err := attr(s.v, calc.FieldType)
	if err != nil {
		return 0, err
	}
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("%w: got %s", calc.ErrNotInteger, v.Type())
	}
	n, ok := i.Int64()
	if !ok {
		return 0, fmt.Errorf("%w: %s out of range", calc.ErrNotInteger, i.String())
	}
	return n, nil
}

// ReadValue implements calc.Source.
func (s Source) ReadValue() (float64, error) {
	v, err := attr(s.v, calc.FieldValue)
	if err != nil {
		return 0, err
	}
	switch v.(type) {
	case starlark.Int, starlark.Float:
		f, _ := starlark.AsFloat(v)
		return f, nil
	default:
		return 0, fmt.Errorf("%w: got %s", calc.ErrNotNumeric, v.Type())
	}
}

// ReadLeft implements calc.Source.
func (s Source) ReadLeft() (calc.Source, error) {
	v, err := attr(s.v, calc.FieldLeft)
	if err != nil {
		return nil, err
	}
	return FromValue(v), nil
}

// ReadRight implements calc.Source.
func (s Source) ReadRight() (calc.Source, error) {
	v, err := attr(s.v, calc.FieldRight)
	if err != nil {
		return nil, err
	}
	return FromValue(v), nil
}

// Len implements calc.Sizer. Nodes carry their size; other values are
// counted by walking their attributes the same way Import does.
func (s Source) Len() (int, error) {
	return s.LenAtMost(math.MaxInt - 1)
}

// LenAtMost implements calc.BoundedSizer.
func (s Source) LenAtMost(limit int) (int, error) {
	if n, ok := s.v.(*Node); ok {
		return n.Size(), nil
	}
	c := attrCounter{limit: limit}
	if err := c.count(s.v, 0); err != nil {
		return 0, err
	}
	return c.total, nil
}

type attrCounter struct {
	total int
	limit int
}

func (c *attrCounter) count(v starlark.Value, depth int) error {
	if n, ok := v.(*Node); ok {
		c.total = addSizes(c.total, n.Size())
		return nil
	}
	if depth > calc.DefaultMaxDepth {
		return fmt.Errorf("value nested deeper than %d levels", calc.DefaultMaxDepth)
	}

	c.total++
	if c.total > c.limit {
		return nil
	}
	if t, err := FromValue(v).ReadType(); err == nil && t == int64(ast.Literal) {
		return nil
	}
	for _, name := range []string{calc.FieldLeft, calc.FieldRight} {
		child, err := attr(v, name)
		if err != nil {
			continue
		}
		if err := c.count(child, depth+1); err != nil {
			return err
		}
		if c.total > c.limit {
			return nil
		}
	}
	return nil
}
