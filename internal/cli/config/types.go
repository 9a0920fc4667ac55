// Package config provides configuration management for the ccalc CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
)

// Config holds all CLI configuration options.
type Config struct {
	MaxDepth     int           `koanf:"max_depth"`
	MaxNodes     int           `koanf:"max_nodes"`
	OutputFormat string        `koanf:"output"`
	Verbose      bool          `koanf:"verbose"`
	Precision    int           `koanf:"precision"`
	Debounce     time.Duration `koanf:"debounce"` // watch: quiet period before re-evaluating
}

// Default configuration values.
const (
	DefaultMaxDepth  = calc.DefaultMaxDepth
	DefaultMaxNodes  = calc.DefaultMaxNodes
	DefaultOutput    = "auto" // Auto-detect: TTY=styled text, non-TTY=plain text
	DefaultPrecision = ast.DefaultPrecision
	DefaultDebounce  = 100 * time.Millisecond
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "json"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		MaxDepth:     DefaultMaxDepth,
		MaxNodes:     DefaultMaxNodes,
		OutputFormat: DefaultOutput,
		Precision:    DefaultPrecision,
		Debounce:     DefaultDebounce,
	}
}

// CalcOptions converts the configuration into import options.
func (c *Config) CalcOptions() []calc.Option {
	return []calc.Option{calc.WithMaxDepth(c.MaxDepth), calc.WithMaxNodes(c.MaxNodes)}
}
