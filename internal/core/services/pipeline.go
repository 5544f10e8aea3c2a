package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.PipelineRunner = (*PipelineOrchestrator)(nil)

// DefaultWorkers is the document-level concurrency bound.
const DefaultWorkers = 4

// expansion maps one input ref to its place in the summary: either the
// record of a failed folder expansion or the number of file refs the
// input expanded to.
type expansion struct {
	failed *domain.DocumentRecord
	count  int
}

// PipelineOrchestrator sequences fetch, extraction, classification and
// persistence over a batch of source refs. One failing item never
// aborts its siblings; every input ref is accounted for in the summary
// exactly once, in input order.
type PipelineOrchestrator struct {
	fetcher    driven.Fetcher
	extractor  driven.Extractor
	classifier driven.Classifier
	artifacts  driven.ArtifactStore
	runStore   driven.RunStore
	assembler  *Assembler
	workers    int

	// Status tracking
	mu     sync.RWMutex
	status *driving.RunStatus
}

// NewPipelineOrchestrator creates a pipeline orchestrator.
// runStore is optional; when nil, run history is not kept.
func NewPipelineOrchestrator(
	fetcher driven.Fetcher,
	extractor driven.Extractor,
	classifier driven.Classifier,
	artifacts driven.ArtifactStore,
	runStore driven.RunStore,
	workers int,
) *PipelineOrchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &PipelineOrchestrator{
		fetcher:    fetcher,
		extractor:  extractor,
		classifier: classifier,
		artifacts:  artifacts,
		runStore:   runStore,
		assembler:  NewAssembler(),
		workers:    workers,
	}
}

// Run processes the refs and returns the aggregate summary.
func (o *PipelineOrchestrator) Run(ctx context.Context, refs []domain.SourceRef, mode domain.Mode) (*domain.RunSummary, error) {
	startedAt := time.Now()

	// 1. Expand folder refs into file refs. A folder that cannot be
	// listed becomes a single failed item; its siblings are unaffected.
	// Each input ref keeps its expansion so the summary can restore
	// input order after the pool finishes.
	expansions := make([]expansion, len(refs))
	var items []domain.SourceRef
	expansionFailures := 0
	for i, ref := range refs {
		expanded, err := o.fetcher.Expand(ctx, ref)
		if err != nil {
			logger.Warn("Cannot expand %s: %v", ref.Display(), err)
			expansions[i].failed = o.assembler.Failed(ref, err)
			expansionFailures++
			continue
		}
		expansions[i].count = len(expanded)
		items = append(items, expanded...)
	}

	// 2. Initialise status tracking.
	o.setStatus(&driving.RunStatus{Running: true, ErrorCount: expansionFailures})
	defer o.clearStatus()

	logger.Info("Processing %d document(s) in %s mode", len(items), mode)

	// 3. Process items concurrently. Results land at their input index
	// so the summary order never depends on completion order.
	results := make([]*domain.DocumentRecord, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = o.assembler.Failed(item, err)
				return nil
			}
			rec := o.processItem(gctx, item, mode)
			results[i] = rec
			o.trackProgress(rec)
			return nil
		})
	}
	// Workers never return errors; Wait only observes ctx cancellation.
	_ = g.Wait()

	// 4. Aggregate in input order: walk the refs again, slotting each
	// expansion failure at its own index and consuming pool results in
	// sequence for the rest.
	summary := &domain.RunSummary{}
	stats := domain.RunStats{}
	records := make([]*domain.DocumentRecord, 0, len(results)+expansionFailures)
	next := 0
	for _, ex := range expansions {
		if ex.failed != nil {
			records = append(records, ex.failed)
			continue
		}
		records = append(records, results[next:next+ex.count]...)
		next += ex.count
	}
	for _, rec := range records {
		summary.Add(rec)
		if rec.Status != domain.StatusFailed {
			stats.TotalPages += rec.PageCount
			stats.TotalChars += rec.TextLength
			if rec.HasSinhala {
				stats.WithSinhala++
			}
			if rec.HasTamil {
				stats.WithTamil++
			}
			if rec.LegacyFont {
				stats.LegacyFonts++
			}
		}
	}

	// 5. Persist the summary artifact.
	if err := o.artifacts.WriteSummary(summary); err != nil {
		return summary, fmt.Errorf("write run summary: %w", err)
	}

	// 6. Record the run in history. History failures degrade, they do
	// not fail a run whose artifacts are already on disk.
	o.saveHistory(ctx, &domain.Run{
		ID:         uuid.New().String(),
		Mode:       mode,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Summary:    *summary,
		Stats:      stats,
	}, records)

	logger.Info("Run complete: %d ok, %d partial, %d failed of %d",
		summary.OK, summary.Partial, summary.Failed, summary.Total)
	return summary, ctx.Err()
}

// processItem runs one document through the full chain. Every failure
// path yields a FAILED record; nothing escapes as an error.
func (o *PipelineOrchestrator) processItem(ctx context.Context, ref domain.SourceRef, mode domain.Mode) *domain.DocumentRecord {
	// 1. Materialise the bytes on disk.
	fetched, err := o.fetcher.Fetch(ctx, ref)
	if err != nil {
		logger.Warn("Fetch failed for %s: %v", ref.Display(), err)
		return o.persistFailure(o.assembler.Failed(ref, err))
	}
	if fetched.Temporary {
		defer os.Remove(fetched.LocalPath)
	}

	// 2. Extract text.
	extraction, err := o.extractor.Extract(ctx, fetched.LocalPath, mode)
	if err != nil {
		logger.Warn("Extraction failed for %s: %v", ref.Display(), err)
		return o.persistFailure(o.assembler.Failed(ref, err))
	}

	// 3. Classify the writing system.
	verdict := o.classifier.Classify(extraction.Text)

	// 4. Assemble the record and persist the artifacts.
	rec := o.assembler.Assemble(ref, fetched, extraction, verdict)
	stem := Stem(rec.FileName)

	if extraction.Text != "" {
		if err := o.artifacts.WriteText(stem, extraction.Text); err != nil {
			logger.Warn("Writing text artifact failed for %s: %v", rec.FileName, err)
			return o.failRecord(rec, fmt.Errorf("write text artifact: %w", err))
		}
	}
	if err := o.artifacts.WriteMetadata(stem, rec); err != nil {
		logger.Warn("Writing metadata artifact failed for %s: %v", rec.FileName, err)
		return o.failRecord(rec, fmt.Errorf("write metadata artifact: %w", err))
	}

	logger.Debug("Processed %s: %s (%s, %d pages, %d chars)",
		rec.FileName, rec.Status, rec.UnicodeStatus, rec.PageCount, rec.TextLength)
	return rec
}

// persistFailure writes the metadata artifact for a failed record so
// the error is visible on disk next to its siblings. Skipped when the
// record never resolved to a plain file name (a folder that would not
// expand, a URL that would not fetch). Best effort: the record stays
// FAILED either way.
func (o *PipelineOrchestrator) persistFailure(rec *domain.DocumentRecord) *domain.DocumentRecord {
	if strings.ContainsAny(rec.FileName, "/\\:") {
		return rec
	}
	if err := o.artifacts.WriteMetadata(Stem(rec.FileName), rec); err != nil {
		logger.Warn("Writing failure metadata for %s: %v", rec.FileName, err)
	}
	return rec
}

// failRecord downgrades an assembled record after a persistence
// failure, keeping whatever stage outputs it already carries.
func (o *PipelineOrchestrator) failRecord(rec *domain.DocumentRecord, err error) *domain.DocumentRecord {
	rec.Status = domain.StatusFailed
	rec.Error = err.Error()
	return rec
}

// saveHistory writes the run and its records to the run store.
func (o *PipelineOrchestrator) saveHistory(ctx context.Context, run *domain.Run, records []*domain.DocumentRecord) {
	if o.runStore == nil {
		return
	}
	if err := o.runStore.SaveRun(ctx, run); err != nil {
		logger.Warn("Cannot save run history: %v", err)
		return
	}
	for _, rec := range records {
		if err := o.runStore.SaveRecord(ctx, run.ID, rec); err != nil {
			logger.Warn("Cannot save record for %s: %v", rec.FileName, err)
		}
	}
}

// Status returns progress for the run in flight, if any.
func (o *PipelineOrchestrator) Status(_ context.Context) (*driving.RunStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.status == nil {
		return &driving.RunStatus{}, nil
	}
	// Return a copy to avoid race conditions.
	copied := *o.status
	return &copied, nil
}

func (o *PipelineOrchestrator) setStatus(status *driving.RunStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = status
}

func (o *PipelineOrchestrator) clearStatus() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = nil
}

func (o *PipelineOrchestrator) trackProgress(rec *domain.DocumentRecord) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status == nil {
		return
	}
	o.status.Processed++
	if rec.Status == domain.StatusFailed {
		o.status.ErrorCount++
	}
}
