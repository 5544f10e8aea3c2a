package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file.pdf]",
	Short: "Extract text from a local PDF",
	Long: `Runs the extraction strategy chain over a local PDF and prints the
text to stdout. Useful for inspecting what the pipeline would see.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&runMode, "mode", "m", "full", "Extraction mode: full or quick")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if docExtractor == nil {
		return errors.New("extraction service not configured")
	}

	result, err := docExtractor.Extract(context.Background(), args[0], domain.ParseMode(runMode))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	cmd.PrintErrf("Strategy: %s, pages: %d, truncated: %t\n",
		result.StrategyUsed, result.PageCount, result.Truncated)
	cmd.Print(result.Text)
	return nil
}
