package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file.pdf]",
	Short: "Classify the writing system of a PDF",
	Long: `Extracts text from a local PDF and reports which writing systems it
uses: Sinhala, Tamil, Latin, or a legacy 8-bit font masquerading as
Latin. Quick mode is used, so only a page prefix is inspected.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if docExtractor == nil || docClassifier == nil {
		return errors.New("classification service not configured")
	}

	result, err := docExtractor.Extract(context.Background(), args[0], domain.ModeQuick)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	verdict := docClassifier.Classify(result.Text)

	cmd.Printf("Status:      %s\n", verdict.Status)
	cmd.Printf("Sinhala:     %t\n", verdict.HasSinhala)
	cmd.Printf("Tamil:       %t\n", verdict.HasTamil)
	cmd.Printf("Latin:       %t\n", verdict.HasLatin)
	cmd.Printf("Legacy font: %t\n", verdict.LegacyFontDetected)
	return nil
}
