package commands

import (
	"fmt"
	"math"
	"runtime"

	"github.com/leapstack-labs/ccalc/pkg/calc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Validate bool
	Jobs     int
}

// EvalResult is the outcome of evaluating one tree file.
type EvalResult struct {
	File  string `json:"file"`
	Nodes int    `json:"nodes,omitempty"`
	// Value is a float64, or "+Inf", "-Inf" or "NaN" which JSON cannot carry.
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`

	value float64
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <file>...",
		Short: "Evaluate expression trees",
		Long: `Load each tree file, import it into an arena and evaluate it.

Tree files may be YAML (.yaml, .yml), JSON (.json), Lua scripts returning a
table (.lua) or Starlark scripts assigning a global "tree" (.star).`,
		Example: `  # Evaluate a single tree
  ccalc eval tree.yaml

  # Evaluate several trees, checking arena invariants first
  ccalc eval --validate a.json b.star

  # Machine-readable output
  ccalc eval -o json tree.lua`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: treeFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "Check arena invariants before evaluating")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files evaluated concurrently (default: number of CPUs)")

	return cmd
}

func runEval(cmd *cobra.Command, files []string, opts *EvalOptions) error {
	cc := NewCommandContext(cmd)
	results := evaluateFiles(cc, files, opts)

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	if cc.Renderer.JSON() {
		if err := cc.Renderer.EncodeJSON(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		renderEvalText(cc, results, len(files) > 1)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tree(s) failed", failed, len(files))
	}
	return nil
}

// evaluateFiles evaluates files concurrently. Results keep argument order.
func evaluateFiles(cc *CommandContext, files []string, opts *EvalOptions) []EvalResult {
	results := make([]EvalResult, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			results[i] = evaluateFile(cc, file, opts.Validate)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func evaluateFile(cc *CommandContext, file string, validate bool) EvalResult {
	res := EvalResult{File: file}

	arena, err := cc.ImportFile(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if validate {
		if err := arena.Validate(); err != nil {
			res.Error = fmt.Sprintf("%s: %v", file, err)
			return res
		}
	}

	res.Nodes = arena.Len()
	res.value = calc.Evaluate(arena)
	res.Value = jsonFloat(res.value)
	cc.Logger.Debug("evaluated tree", "file", file, "value", res.value)
	return res
}

func jsonFloat(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return v
}

func renderEvalText(cc *CommandContext, results []EvalResult, showFile bool) {
	r := cc.Renderer
	styles := r.Styles()
	for _, res := range results {
		if res.Error != "" {
			r.Errorf("Error: %s", res.Error)
			continue
		}
		value := styles.Value.Render(formatValue(res.value, cc.Cfg.Precision))
		if showFile {
			r.Printf("%s %s\n", styles.Muted.Render(res.File+":"), value)
		} else {
			r.Println(value)
		}
	}
}

func formatValue(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}
