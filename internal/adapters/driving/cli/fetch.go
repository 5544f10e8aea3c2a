package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url ...]",
	Short: "Download documents without processing them",
	Long: `Downloads Google Drive files or folders into the download directory
and reports where each landed. No extraction or classification runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if docFetcher == nil {
		return errors.New("fetch service not configured")
	}

	refs, err := parseRefs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var failed int
	for _, ref := range refs {
		files, err := docFetcher.Expand(ctx, ref)
		if err != nil {
			cmd.PrintErrf("Cannot expand %s: %v\n", ref.Display(), err)
			failed++
			continue
		}

		for _, file := range files {
			result, err := docFetcher.Fetch(ctx, file)
			if err != nil {
				cmd.PrintErrf("Fetch failed for %s: %v\n", file.Display(), err)
				failed++
				continue
			}
			cmd.Printf("%s (%d bytes)\n", result.LocalPath, result.ByteSize)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d fetch(es) failed", failed)
	}
	return nil
}
