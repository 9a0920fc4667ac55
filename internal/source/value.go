// Package source adapts decoded documents (YAML, JSON, Lua tables) to the
// calc.Source capability.
//
// Documents are generic Go values: a node is a map with string keys
// "type", "value", "left" and "right". Numbers may arrive as any Go integer
// or float type depending on the decoder.
package source

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
)

// maxCountDepth bounds the recursion of Len on malformed documents.
const maxCountDepth = calc.DefaultMaxDepth

// Node wraps one decoded document node.
type Node struct {
	fields map[string]any
	err    error // set when the underlying value is not a map
}

var (
	_ calc.Source       = Node{}
	_ calc.BoundedSizer = Node{}
)

// FromValue wraps a decoded document. v should be a map with string keys;
// any other value yields a node whose fields are all missing.
func FromValue(v any) Node {
	m, err := asMap(v)
	return Node{fields: m, err: err}
}

func asMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			out[key] = val
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("node is null")
	default:
		return nil, fmt.Errorf("node is %T, not a mapping", v)
	}
}

func (n Node) field(name string) (any, error) {
	if n.err != nil {
		return nil, fmt.Errorf("%w: %q: %v", calc.ErrFieldMissing, name, n.err)
	}
	v, ok := n.fields[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %q", calc.ErrFieldMissing, name)
	}
	return v, nil
}

// ReadType implements calc.Source.
func (n Node) ReadType() (int64, error) {
	v, err := n.field(calc.FieldType)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

// ReadValue implements calc.Source.
func (n Node) ReadValue() (float64, error) {
	v, err := n.field(calc.FieldValue)
	if err != nil {
		return 0, err
	}
	return toFloat(v)
}

// ReadLeft implements calc.Source.
func (n Node) ReadLeft() (calc.Source, error) {
	return n.child(calc.FieldLeft)
}

// ReadRight implements calc.Source.
func (n Node) ReadRight() (calc.Source, error) {
	return n.child(calc.FieldRight)
}

func (n Node) child(name string) (calc.Source, error) {
	v, err := n.field(name)
	if err != nil {
		return nil, err
	}
	return FromValue(v), nil
}

// Len implements calc.Sizer. It counts the values reachable through
// "left" and "right" of non-literal nodes, which is exactly the set Import
// reserves slots for.
func (n Node) Len() (int, error) {
	return n.LenAtMost(math.MaxInt - 1)
}

// LenAtMost implements calc.BoundedSizer. Counting stops as soon as the
// total passes limit.
func (n Node) LenAtMost(limit int) (int, error) {
	if n.err != nil {
		return 0, n.err
	}
	c := nodeCounter{limit: limit}
	if err := c.count(n.fields, 0); err != nil {
		return 0, err
	}
	return c.total, nil
}

type nodeCounter struct {
	total int
	limit int
}

func (c *nodeCounter) count(m map[string]any, depth int) error {
	if depth > maxCountDepth {
		return fmt.Errorf("document deeper than %d levels", maxCountDepth)
	}
	c.total++
	if c.total > c.limit {
		return nil
	}
	if tag, err := toInt(m[calc.FieldType]); err == nil && tag == int64(ast.Literal) {
		// Import never descends below a literal.
		return nil
	}
	for _, name := range []string{calc.FieldLeft, calc.FieldRight} {
		v, ok := m[name]
		if !ok || v == nil {
			continue
		}
		child, err := asMap(v)
		if err != nil {
			// Import still reserves a slot for the malformed child before
			// reporting it.
			c.total++
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

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d out of range", calc.ErrNotInteger, x)
		}
		return int64(x), nil
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	default:
		return 0, fmt.Errorf("%w: got %T", calc.ErrNotInteger, v)
	}
}

// floatToInt accepts integral floats, which JSON and Lua decoders produce
// for every number.
func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", calc.ErrNotInteger, f)
	}
	return int64(f), nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: got %T", calc.ErrNotNumeric, v)
	}
}
