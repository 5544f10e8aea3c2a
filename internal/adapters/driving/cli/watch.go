package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Process PDFs as they appear in a directory",
	Long: `Watches a directory and runs the pipeline over every PDF dropped or
rewritten there, after a short quiet period. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchMode string

func init() {
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "full", "Extraction mode: full or quick")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if pipelineRunner == nil {
		return errors.New("pipeline service not configured")
	}

	watcher, err := watch.New(args[0], pipelineRunner, domain.ParseMode(watchMode))
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", args[0], err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (press Ctrl-C to stop)\n", args[0])
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
