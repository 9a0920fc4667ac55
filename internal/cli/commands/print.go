package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/spf13/cobra"
)

// PrintOptions holds options for the print command.
type PrintOptions struct {
	Arena bool
}

// arenaRow is the JSON form of one arena slot.
type arenaRow struct {
	Index int      `json:"index"`
	Kind  string   `json:"kind"`
	Value *float64 `json:"value,omitempty"`
	Left  *int     `json:"left,omitempty"`
	Right *int     `json:"right,omitempty"`
}

// NewPrintCommand creates the print command.
func NewPrintCommand() *cobra.Command {
	opts := &PrintOptions{}

	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print an expression tree",
		Long: `Import a tree file and print it, one node per line, children indented
two spaces below their parent. With --arena the imported arena is listed
slot by slot instead.`,
		Example: `  # Indented tree
  ccalc print tree.yaml

  # Arena layout
  ccalc print --arena tree.star`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: treeFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Arena, "arena", false, "List arena slots instead of the tree")

	return cmd
}

func runPrint(cmd *cobra.Command, file string, opts *PrintOptions) error {
	cc := NewCommandContext(cmd)

	arena, err := cc.ImportFile(file)
	if err != nil {
		return err
	}

	switch {
	case cc.Renderer.JSON():
		return cc.Renderer.EncodeJSON(arenaRows(arena))
	case opts.Arena:
		renderArenaTable(cc, arena)
		return nil
	default:
		return ast.Fprint(cc.Renderer.Writer(), arena, cc.Cfg.Precision)
	}
}

func arenaRows(arena ast.Arena) []arenaRow {
	rows := make([]arenaRow, len(arena))
	for i, n := range arena {
		row := arenaRow{Index: i, Kind: n.Kind.String()}
		if n.Kind.IsOperator() {
			left, right := n.Left, n.Right
			row.Left, row.Right = &left, &right
		} else {
			v := n.Scalar
			row.Value = &v
		}
		rows[i] = row
	}
	return rows
}

func renderArenaTable(cc *CommandContext, arena ast.Arena) {
	t := table.NewWriter()
	t.SetOutputMirror(cc.Renderer.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Value", "Left", "Right"})

	for i, n := range arena {
		if n.Kind.IsOperator() {
			t.AppendRow(table.Row{i, n.Kind.String(), n.Kind.Symbol(), strconv.Itoa(n.Left), strconv.Itoa(n.Right)})
			continue
		}
		t.AppendRow(table.Row{i, n.Kind.String(), formatValue(n.Scalar, cc.Cfg.Precision), "-", "-"})
	}

	t.Render()
	_, _ = fmt.Fprintf(cc.Renderer.Writer(), "(%d nodes)\n", len(arena))
}
