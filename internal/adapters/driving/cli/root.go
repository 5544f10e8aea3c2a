// Package cli implements the docfeed command-line interface using cobra.
// Commands are thin: they parse arguments, call the core services
// through the driving and driven ports, and format output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docfeed-cli/internal/extract"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands call. Wired by SetServices before Execute;
// commands guard against missing services so tests can run a subset.
var (
	pipelineRunner driving.PipelineRunner
	docFetcher     driven.Fetcher
	docExtractor   driven.Extractor
	docClassifier  driven.Classifier
	runStore       driven.RunStore
	inspectFile    = extract.Info
)

// Services bundles everything the CLI needs.
type Services struct {
	PipelineRunner driving.PipelineRunner
	Fetcher        driven.Fetcher
	Extractor      driven.Extractor
	Classifier     driven.Classifier
	RunStore       driven.RunStore
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	pipelineRunner = s.PipelineRunner
	docFetcher = s.Fetcher
	docExtractor = s.Extractor
	docClassifier = s.Classifier
	runStore = s.RunStore
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docfeed",
	Short: "Ingest exam document PDFs for retrieval",
	Long: `docfeed fetches exam document PDFs, extracts their text, classifies
the writing system (Sinhala, Tamil, Latin or legacy 8-bit fonts) and
writes the text, metadata and summary artifacts consumed by the
downstream retrieval pipeline.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
