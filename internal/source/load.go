package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	starlarktree "github.com/leapstack-labs/ccalc/internal/starlark"
	"github.com/leapstack-labs/ccalc/pkg/calc"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".yaml", ".yml", ".json", ".lua", ".star"}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the tree stored at path, choosing the decoder by extension.
// Starlark scripts must assign their tree to the global "tree"; opts are
// passed to the script's eval_ast builtin. Lua conversion honours the
// MaxNodes option.
func Load(path string, opts ...calc.Option) (calc.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeFile(path, DecodeYAML)
	case ".json":
		return decodeFile(path, DecodeJSON)
	case ".lua":
		n, err := LoadLua(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return n, nil
	case ".star":
		ctx := starlarktree.NewContext(starlarktree.WithCalcOptions(opts...))
		tree, err := ctx.LoadTree(path, nil)
		if err != nil {
			return nil, err
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("unsupported tree file %q (expected one of %s)", path, strings.Join(Extensions, ", "))
	}
}

func decodeFile(path string, decode func(io.Reader) (Node, error)) (calc.Source, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open tree file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
