package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past pipeline runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the records of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run history not configured")
	}

	runs, err := runStore.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for i := range runs {
		run := &runs[i]
		cmd.Printf("%s  %s  %s  %d ok / %d partial / %d failed\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Mode,
			run.Summary.OK, run.Summary.Partial, run.Summary.Failed)
	}

	cmd.Printf("\nTotal: %d run(s)\n", len(runs))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if runStore == nil {
		return errors.New("run history not configured")
	}

	ctx := context.Background()
	run, err := runStore.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	records, err := runStore.ListRecords(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	cmd.Printf("Run: %s\n\n", run.ID)
	cmd.Printf("  Mode:     %s\n", run.Mode)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Pages:    %d\n", run.Stats.TotalPages)
	cmd.Printf("  Chars:    %d\n", run.Stats.TotalChars)
	cmd.Println()

	for i := range records {
		rec := &records[i]
		cmd.Printf("  %-8s %-14s %s", rec.Status, rec.UnicodeStatus, rec.FileName)
		if rec.Error != "" {
			cmd.Printf("  (%s)", rec.Error)
		}
		cmd.Println()
	}
	return nil
}
