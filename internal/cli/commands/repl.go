package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	starlarktree "github.com/leapstack-labs/ccalc/internal/starlark"
	"github.com/leapstack-labs/ccalc/pkg/ast"
	"github.com/leapstack-labs/ccalc/pkg/calc"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const (
	replPrompt  = "ccalc> "
	historyName = "repl_history"
)

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	HistoryFile string
	ShowTree    bool
}

// lineReader is the part of readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression shell",
		Long: `Start an interactive shell that evaluates Starlark expressions.

Expressions that produce a tree are imported and evaluated:

  ccalc> Multiply(Plus(1, 2), 3)
  9.00
  ccalc> Literal(1) + 2 * 3
  7.00

Type .help for commands, .quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history", defaultHistoryFile(), "History file (empty disables history)")
	cmd.Flags().BoolVar(&opts.ShowTree, "tree", false, "Print each tree before its value")

	return cmd
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ccalc", historyName)
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	if opts.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.HistoryFile), 0o750); err != nil {
			opts.HistoryFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ccalc expression shell")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	return replLoop(NewCommandContext(cmd), rl, opts)
}

// replSession evaluates REPL input against one Starlark context.
type replSession struct {
	cc       *CommandContext
	star     *starlarktree.ExecutionContext
	showTree bool
}

func replLoop(cc *CommandContext, rl lineReader, opts *REPLOptions) error {
	s := &replSession{
		cc: cc,
		star: starlarktree.NewContext(
			starlarktree.WithOutput(cc.Renderer.Writer()),
			starlarktree.WithCalcOptions(cc.CalcOptions()...),
		),
		showTree: opts.ShowTree,
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if quit := s.handleDotCommand(line); quit {
				return nil
			}
			continue
		}

		if err := s.eval(line); err != nil {
			cc.Renderer.Errorf("Error: %v", err)
		}
	}
}

func (s *replSession) eval(expr string) error {
	v, err := s.star.EvalExpr(expr, "<repl>")
	if err != nil {
		return err
	}

	r := s.cc.Renderer
	switch v.(type) {
	case starlark.NoneType:
		return nil
	case *starlarktree.Node, *starlarkstruct.Struct:
		opts := s.cc.CalcOptions()
		arena, err := calc.Import(starlarktree.FromValue(v), opts...)
		if err != nil {
			return err
		}
		if s.showTree {
			if err := ast.Fprint(r.Writer(), arena, s.cc.Cfg.Precision); err != nil {
				return err
			}
		}
		r.Println(r.Styles().Value.Render(formatValue(calc.Evaluate(arena), s.cc.Cfg.Precision)))
	default:
		r.Println(v.String())
	}
	return nil
}

// handleDotCommand runs a dot-command and reports whether the REPL should exit.
func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	r := s.cc.Renderer

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(r.Writer())
	case ".tree":
		s.showTree = !s.showTree
		state := "off"
		if s.showTree {
			state = "on"
		}
		r.Printf("tree printing %s\n", state)
	default:
		r.Errorf("Unknown command: %s (type .help for commands)", parts[0])
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tree           Toggle printing each tree before its value
  .quit / .exit   Exit the REPL

Builders:
  Literal(v), Plus(l, r), Multiply(l, r)   nodes; + and * also build nodes
  struct(type=..., value=..., left=..., right=...)
  eval_ast(node), hello_world()
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range []string{"Literal(", "Plus(", "Add(", "Multiply(", "struct(", "eval_ast(", "hello_world()"} {
		items = append(items, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tree"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
