package commands

import (
	"fmt"
	"runtime"

	"github.com/leapstack-labs/ccalc/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ccalc version",
		Long: `Print the ccalc version, the toolchain it was built with and the
import limits compiled in as defaults.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "ccalc v%s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(w, "Expression trees: pre-order arena import, depth limit %d, node limit %d\n",
				config.DefaultMaxDepth, config.DefaultMaxNodes)
		},
	}
}
