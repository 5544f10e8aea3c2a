package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file.pdf]",
	Short: "Show PDF structure without extracting text",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := inspectFile(args[0])
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	cmd.Printf("File:   %s\n", info.Path)
	cmd.Printf("Size:   %d bytes\n", info.ByteSize)
	cmd.Printf("Pages:  %d\n", info.PageCount)
	cmd.Printf("Valid:  %t\n", info.Valid)
	return nil
}
