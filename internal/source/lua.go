package source

import (
	"fmt"

	"github.com/Shopify/go-lua"
	"github.com/leapstack-labs/ccalc/pkg/calc"
)

// LoadLua runs the Lua script at path and converts the table it returns:
//
//	return { type = 2,
//	  left = { type = 1, left = { type = 0, value = 1 }, right = { type = 0, value = 2 } },
//	  right = { type = 0, value = 3 } }
//
// Only string-keyed entries are kept. Lua numbers become float64, which
// ReadType accepts when integral. A table reached several times is
// converted once and shared, and the number of distinct tables is bounded by
// the MaxNodes option.
func LoadLua(path string, opts ...calc.Option) (Node, error) {
	o := calc.NewOptions(opts...)

	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return Node{}, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return Node{}, fmt.Errorf("run lua: %w", err)
	}
	defer state.Pop(1)

	if state.TypeOf(-1) != lua.TypeTable {
		return Node{}, fmt.Errorf("lua script must return a table")
	}
	conv := &luaConverter{
		state: state,
		seen:  map[any]map[string]any{},
		limit: o.MaxNodes,
	}
	doc, err := conv.table(-1, 0)
	if err != nil {
		return Node{}, err
	}
	o.Logger.Debug("converted lua tree", "tables", conv.tables)
	return FromValue(doc), nil
}

type luaConverter struct {
	state  *lua.State
	seen   map[any]map[string]any // keyed by the table identity from ToValue
	tables int                    // tables entered so far
	limit  int
}

func (c *luaConverter) table(index, depth int) (map[string]any, error) {
	if depth > maxCountDepth {
		return nil, fmt.Errorf("lua table nested deeper than %d levels", maxCountDepth)
	}

	index = c.state.AbsIndex(index)
	id := c.state.ToValue(index)
	if out, ok := c.seen[id]; ok {
		return out, nil
	}
	c.tables++
	if c.tables > c.limit {
		return nil, &calc.ImportError{Kind: calc.NodeLimitExceeded, Limit: c.limit}
	}

	out := map[string]any{}
	c.state.PushNil()
	for c.state.Next(index) {
		// Keys are only converted when already strings; ToString on a
		// number key would confuse Next.
		if c.state.TypeOf(-2) == lua.TypeString {
			key, _ := c.state.ToString(-2)
			v, err := c.value(-1, depth)
			if err != nil {
				c.state.Pop(2)
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if v != nil {
				out[key] = v
			}
		}
		c.state.Pop(1)
	}
	c.seen[id] = out
	return out, nil
}

func (c *luaConverter) value(index, depth int) (any, error) {
	switch c.state.TypeOf(index) {
	case lua.TypeNumber:
		v, _ := c.state.ToNumber(index)
		return v, nil
	case lua.TypeString:
		v, _ := c.state.ToString(index)
		return v, nil
	case lua.TypeBoolean:
		return c.state.ToBoolean(index), nil
	case lua.TypeTable:
		return c.table(index, depth+1)
	default:
		return nil, nil
	}
}
