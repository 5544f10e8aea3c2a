package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/fetch/drive"
)

var runCmd = &cobra.Command{
	Use:   "run [path-or-url ...]",
	Short: "Process documents through the full pipeline",
	Long: `Fetches, extracts, classifies and persists each document. Sources may
be local PDF paths, Google Drive file URLs or Google Drive folder URLs;
folders are expanded into their contained PDFs. One failing document
never aborts the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPipeline,
}

// runMode is a flag shared by run and watch.
var runMode string

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "full", "Extraction mode: full or quick")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if pipelineRunner == nil {
		return errors.New("pipeline service not configured")
	}

	refs, err := parseRefs(args)
	if err != nil {
		return err
	}

	summary, err := pipelineRunner.Run(context.Background(), refs, domain.ParseMode(runMode))
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printSummary(cmd, summary)
	if summary.Failed == summary.Total && summary.Total > 0 {
		return errors.New("every document failed")
	}
	return nil
}

// parseRefs maps each argument to a source ref: URLs become remote
// file or folder refs, everything else is a local path.
func parseRefs(args []string) ([]domain.SourceRef, error) {
	refs := make([]domain.SourceRef, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, "://") {
			refs = append(refs, domain.LocalRef(arg))
			continue
		}

		parsed, err := drive.ParseURL(arg)
		if err != nil {
			return nil, fmt.Errorf("unsupported source %q: %w", arg, err)
		}
		if parsed.Kind == drive.RefFolder {
			refs = append(refs, domain.RemoteFolderRef(arg))
		} else {
			refs = append(refs, domain.RemoteFileRef(arg))
		}
	}
	return refs, nil
}

func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Println()
	for _, file := range summary.Files {
		cmd.Printf("  %-8s %s\n", file.Status, file.FileName)
	}
	cmd.Printf("\nProcessed %d document(s): %d ok, %d partial, %d failed\n",
		summary.Total, summary.OK, summary.Partial, summary.Failed)
}
