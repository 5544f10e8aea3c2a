// Command docfeed is the exam-document ingestion CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/docfeed-cli/internal/adapters/driven/artifacts"
	"github.com/custodia-labs/docfeed-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docfeed-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docfeed-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docfeed-cli/internal/core/services"
	"github.com/custodia-labs/docfeed-cli/internal/extract"
	"github.com/custodia-labs/docfeed-cli/internal/fetch"
	"github.com/custodia-labs/docfeed-cli/internal/fetch/drive"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
	"github.com/custodia-labs/docfeed-cli/internal/script"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Configuration first: everything else is tuned from it.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	cli.SetConfigStore(configStore)

	// Legacy font signatures: user table with built-in fallback.
	signatureStore, err := file.NewSignatureStore("")
	if err != nil {
		return fmt.Errorf("open signature store: %w", err)
	}
	signatures, err := signatureStore.Load()
	if err != nil {
		logger.Warn("Cannot load signature table, using built-ins: %v", err)
		signatures = script.DefaultSignatures()
	}

	classifier := script.New(script.Config{
		Signatures:    signatures,
		MinTextLength: configStore.GetInt("classify.min_text_length"),
	})

	extractor := extract.NewChain(extract.Config{
		QuickPages:    configStore.GetInt("extract.quick_pages"),
		MaxPages:      configStore.GetInt("extract.max_pages"),
		MaxTextLength: configStore.GetInt("extract.max_text_length"),
	})

	// The Drive client is optional: without credentials, local files
	// still work and remote refs fail with a clear error.
	var storageClient *drive.Client
	auth := drive.Auth{
		APIKey:      firstNonEmpty(os.Getenv("DOCFEED_DRIVE_API_KEY"), configStore.GetString("drive.api_key")),
		AccessToken: os.Getenv("DOCFEED_DRIVE_ACCESS_TOKEN"),
	}
	if auth.APIKey != "" || auth.AccessToken != "" {
		storageClient, err = drive.NewClient(ctx, auth)
		if err != nil {
			return fmt.Errorf("create drive client: %w", err)
		}
	}

	fetchCfg := fetch.Config{
		AllowedOrigins: configStore.GetStringSlice("fetch.allowed_origins"),
		MaxBytes:       int64(configStore.GetInt("fetch.max_bytes")),
		DownloadRoot:   configStore.GetString("fetch.download_dir"),
		RetryAttempts:  configStore.GetInt("fetch.retry_attempts"),
		BackoffBase:    time.Duration(configStore.GetInt("fetch.backoff_base_ms")) * time.Millisecond,
	}
	var fetcher *fetch.Fetcher
	if storageClient != nil {
		fetcher = fetch.New(storageClient, fetchCfg)
	} else {
		fetcher = fetch.New(nil, fetchCfg)
	}

	outputDir := configStore.GetString("pipeline.output_dir")
	if outputDir == "" {
		outputDir = "artifacts"
	}
	artifactStore, err := artifacts.NewWriter(outputDir)
	if err != nil {
		return fmt.Errorf("open artifact directory: %w", err)
	}

	runStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer runStore.Close()

	orchestrator := services.NewPipelineOrchestrator(
		fetcher,
		extractor,
		classifier,
		artifactStore,
		runStore,
		configStore.GetInt("pipeline.workers"),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		PipelineRunner: orchestrator,
		Fetcher:        fetcher,
		Extractor:      extractor,
		Classifier:     classifier,
		RunStore:       runStore,
	})

	return cli.Execute()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
