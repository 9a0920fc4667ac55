package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-evaluate a tree file whenever it changes",
		Long: `Evaluate a tree file, then watch it and evaluate it again after every
change. Bursts of writes are coalesced using the configured debounce
interval. Press Ctrl-C to stop.`,
		Example: `  ccalc watch tree.star
  CCALC_DEBOUNCE=500ms ccalc watch tree.yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: treeFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, args[0])
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, file string) error {
	cc := NewCommandContext(cmd)

	evaluate := func() {
		res := evaluateFile(cc, file, true)
		renderEvalText(cc, []EvalResult{res}, false)
	}

	evaluate()
	return watchFile(ctx, file, cc.Cfg.Debounce, func(event fsnotify.Event) {
		cc.Logger.Debug("file changed, re-evaluating", "file", event.Name, "op", event.Op.String())
		evaluate()
	}, func(err error) {
		cc.Logger.Error("watcher error", "error", err)
	})
}

// watchFile calls onChange after file is written or recreated, once per
// burst of events separated by less than debounce. It returns when ctx is
// done.
func watchFile(ctx context.Context, file string, debounce time.Duration, onChange func(fsnotify.Event), onError func(error)) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("cannot watch %s: %w", file, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace files instead of writing them.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("cannot watch %s: %w", file, err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				onChange(event)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}
