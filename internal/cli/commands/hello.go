package commands

import (
	"fmt"

	starlarktree "github.com/leapstack-labs/ccalc/internal/starlark"
	"github.com/spf13/cobra"
)

// NewHelloCommand creates the hello command.
func NewHelloCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting",
		Long:  `Print the greeting also available to scripts as hello_world().`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), starlarktree.HelloWorld)
		},
	}
}
