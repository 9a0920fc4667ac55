package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ccalc/internal/cli/config"
	"github.com/leapstack-labs/ccalc/internal/cli/output"
	"github.com/leapstack-labs/ccalc/internal/source"
	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the loaded configuration
// and the logger stored on the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// CalcOptions returns the import options for the current configuration.
func (cc *CommandContext) CalcOptions() []calc.Option {
	return append(cc.Cfg.CalcOptions(), calc.WithLogger(cc.Logger))
}

// ImportFile loads and imports the tree stored at path.
func (cc *CommandContext) ImportFile(path string) (ast.Arena, error) {
	opts := cc.CalcOptions()
	tree, err := source.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	arena, err := calc.Import(tree, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cc.Logger.Debug("loaded tree", "file", path, "nodes", arena.Len())
	return arena, nil
}

// getConfig returns the current configuration, or defaults when none was
// loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// treeFileCompletion restricts shell completion to tree files.
func treeFileCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	exts := make([]string, 0, len(source.Extensions))
	for _, ext := range source.Extensions {
		exts = append(exts, ext[1:])
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}
