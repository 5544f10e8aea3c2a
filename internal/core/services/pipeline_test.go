package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfeed-cli/internal/adapters/driven/artifacts"
	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// fakeFetcher serves scripted results keyed by ref display name.
type fakeFetcher struct {
	results map[string]*domain.FetchResult
	errs    map[string]error

	expanded map[string][]domain.SourceRef
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.FetchResult, error) {
	if err, ok := f.errs[ref.Display()]; ok {
		return nil, err
	}
	if result, ok := f.results[ref.Display()]; ok {
		return result, nil
	}
	return &domain.FetchResult{LocalPath: "/tmp/" + ref.Display(), ByteSize: 1024, RetrievedAt: time.Now()}, nil
}

func (f *fakeFetcher) Expand(ctx context.Context, ref domain.SourceRef) ([]domain.SourceRef, error) {
	if refs, ok := f.expanded[ref.Display()]; ok {
		return refs, nil
	}
	if ref.Kind == domain.SourceRemoteFolder {
		return nil, fmt.Errorf("%w: folder listing failed", domain.ErrNetwork)
	}
	return []domain.SourceRef{ref}, nil
}

// fakeExtractor returns scripted text per path, or an error.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
	pages int
}

func (e *fakeExtractor) Extract(ctx context.Context, path string, mode domain.Mode) (*domain.ExtractionResult, error) {
	if err, ok := e.errs[path]; ok {
		return nil, err
	}
	text, ok := e.texts[path]
	if !ok {
		text = "extracted text for " + path
	}
	return &domain.ExtractionResult{
		Text:         text,
		PageCount:    e.pages,
		StrategyUsed: domain.StrategyFast,
	}, nil
}

func (e *fakeExtractor) PageCount(path string) (int, error) { return e.pages, nil }

// fakeClassifier marks everything Sinhala unless text carries a marker.
type fakeClassifier struct{}

func (fakeClassifier) Classify(text string) domain.ScriptVerdict {
	if strings.Contains(text, "legacy") {
		return domain.ScriptVerdict{LegacyFontDetected: true, Status: domain.StatusLegacyFont}
	}
	return domain.ScriptVerdict{HasSinhala: true, Status: domain.StatusValidSinhala}
}

// memArtifacts records writes in memory.
type memArtifacts struct {
	mu       sync.Mutex
	texts    map[string]string
	metadata map[string]*domain.DocumentRecord
	summary  *domain.RunSummary

	textErr error
	metaErr error
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{texts: map[string]string{}, metadata: map[string]*domain.DocumentRecord{}}
}

func (a *memArtifacts) WriteText(stem, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.textErr != nil {
		return a.textErr
	}
	a.texts[stem] = text
	return nil
}

func (a *memArtifacts) WriteMetadata(stem string, rec *domain.DocumentRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.metaErr != nil {
		return a.metaErr
	}
	a.metadata[stem] = rec
	return nil
}

func (a *memArtifacts) WriteSummary(summary *domain.RunSummary) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summary = summary
	return nil
}

// memRunStore records history writes in memory.
type memRunStore struct {
	mu      sync.Mutex
	runs    []*domain.Run
	records map[string][]*domain.DocumentRecord
}

func newMemRunStore() *memRunStore {
	return &memRunStore{records: map[string][]*domain.DocumentRecord{}}
}

func (s *memRunStore) SaveRun(ctx context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *memRunStore) SaveRecord(ctx context.Context, runID string, rec *domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[runID] = append(s.records[runID], rec)
	return nil
}

func (s *memRunStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	return nil, domain.ErrNotFound
}

func (s *memRunStore) ListRuns(ctx context.Context) ([]domain.Run, error) { return nil, nil }

func (s *memRunStore) ListRecords(ctx context.Context, runID string) ([]domain.DocumentRecord, error) {
	return nil, nil
}

func (s *memRunStore) Close() error { return nil }

func localRefs(names ...string) []domain.SourceRef {
	refs := make([]domain.SourceRef, len(names))
	for i, name := range names {
		refs[i] = domain.LocalRef("/data/" + name)
	}
	return refs
}

func newTestOrchestrator(fetcher *fakeFetcher, extractor *fakeExtractor, artifacts *memArtifacts, store *memRunStore) *PipelineOrchestrator {
	if store == nil {
		return NewPipelineOrchestrator(fetcher, extractor, fakeClassifier{}, artifacts, nil, 2)
	}
	return NewPipelineOrchestrator(fetcher, extractor, fakeClassifier{}, artifacts, store, 2)
}

func TestRun_AllOK(t *testing.T) {
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 12}, artifacts, nil)

	summary, err := o.Run(context.Background(), localRefs("a.pdf", "b.pdf"), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.OK)
	assert.Zero(t, summary.Failed)
	assert.Len(t, artifacts.texts, 2)
	assert.Len(t, artifacts.metadata, 2)
	require.NotNil(t, artifacts.summary)
	assert.Equal(t, summary, artifacts.summary)
}

func TestRun_FailureIsolation(t *testing.T) {
	refs := localRefs("a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf")
	extractor := &fakeExtractor{
		pages: 3,
		errs: map[string]error{
			"/tmp/c.pdf": fmt.Errorf("%w: all strategies failed", domain.ErrUnreadablePDF),
		},
	}
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, extractor, artifacts, nil)

	summary, err := o.Run(context.Background(), refs, domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 4, summary.OK)
	assert.Equal(t, 1, summary.Failed)

	// The failed item keeps its place in the per-file list.
	require.Len(t, summary.Files, 5)
	assert.Equal(t, "c.pdf", summary.Files[2].FileName)
	assert.Equal(t, domain.StatusFailed, summary.Files[2].Status)

	// Four text artifacts; metadata exists for every item including the
	// failed one, which carries the error.
	assert.Len(t, artifacts.texts, 4)
	require.Len(t, artifacts.metadata, 5)
	assert.NotContains(t, artifacts.texts, "c")

	failed := artifacts.metadata["c"]
	require.NotNil(t, failed)
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "unreadable PDF")
}

func TestRun_SummaryKeepsInputOrder(t *testing.T) {
	refs := localRefs("z.pdf", "a.pdf", "m.pdf")
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, artifacts, nil)

	summary, err := o.Run(context.Background(), refs, domain.ModeFull)
	require.NoError(t, err)

	var names []string
	for _, f := range summary.Files {
		names = append(names, f.FileName)
	}
	assert.Equal(t, []string{"z.pdf", "a.pdf", "m.pdf"}, names)
}

func TestRun_LegacyFontIsPartial(t *testing.T) {
	extractor := &fakeExtractor{pages: 2, texts: map[string]string{"/tmp/old.pdf": "legacy glyph soup"}}
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, extractor, artifacts, nil)

	summary, err := o.Run(context.Background(), localRefs("old.pdf"), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Partial)
	rec := artifacts.metadata["old"]
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusPartial, rec.Status)
	assert.Equal(t, domain.StatusLegacyFont, rec.UnicodeStatus)
	assert.True(t, rec.LegacyFont)

	// The unusable text is still persisted for later reprocessing.
	assert.Contains(t, artifacts.texts, "old")
}

func TestRun_FetchFailureRecorded(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{
		"gone.pdf": fmt.Errorf("%w: gone.pdf", domain.ErrNotFound),
	}}
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(fetcher, &fakeExtractor{pages: 1}, artifacts, nil)

	summary, err := o.Run(context.Background(), localRefs("gone.pdf", "ok.pdf"), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.OK)
}

func TestRun_FolderExpansionFailureIsOneFailedItem(t *testing.T) {
	folder := domain.RemoteFolderRef("https://drive.google.com/drive/folders/broken")
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, artifacts, nil)

	summary, err := o.Run(context.Background(), append([]domain.SourceRef{folder}, localRefs("ok.pdf")...), domain.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.OK)
}

func TestRun_ExpansionFailureKeepsInputOrder(t *testing.T) {
	folder := domain.RemoteFolderRef("https://drive.google.com/drive/folders/broken")
	refs := []domain.SourceRef{
		domain.LocalRef("/data/a.pdf"),
		folder,
		domain.LocalRef("/data/b.pdf"),
	}
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, artifacts, nil)

	summary, err := o.Run(context.Background(), refs, domain.ModeFull)
	require.NoError(t, err)

	// The unlistable folder holds its place between its siblings.
	require.Len(t, summary.Files, 3)
	assert.Equal(t, "a.pdf", summary.Files[0].FileName)
	assert.Equal(t, folder.Display(), summary.Files[1].FileName)
	assert.Equal(t, domain.StatusFailed, summary.Files[1].Status)
	assert.Equal(t, "b.pdf", summary.Files[2].FileName)
}

func TestRun_FolderContentsStayInPlace(t *testing.T) {
	folder := domain.RemoteFolderRef("https://drive.google.com/drive/folders/papers")
	fetcher := &fakeFetcher{expanded: map[string][]domain.SourceRef{
		folder.Display(): localRefs("p1.pdf", "p2.pdf"),
	}}
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(fetcher, &fakeExtractor{pages: 1}, artifacts, nil)

	refs := append([]domain.SourceRef{folder}, localRefs("x.pdf")...)
	summary, err := o.Run(context.Background(), refs, domain.ModeFull)
	require.NoError(t, err)

	var names []string
	for _, f := range summary.Files {
		names = append(names, f.FileName)
	}
	assert.Equal(t, []string{"p1.pdf", "p2.pdf", "x.pdf"}, names)
}

func TestRun_RerunWritesIdenticalArtifacts(t *testing.T) {
	refs := localRefs("a.pdf", "b.pdf")
	extractor := &fakeExtractor{pages: 4, texts: map[string]string{
		"/tmp/a.pdf": "සිංහල ප්‍රශ්න පත්‍රය text",
		"/tmp/b.pdf": "second paper text",
	}}

	runOnce := func(dir string) {
		writer, err := artifacts.NewWriter(dir)
		require.NoError(t, err)
		o := NewPipelineOrchestrator(&fakeFetcher{}, extractor, fakeClassifier{}, writer, nil, 2)
		_, err = o.Run(context.Background(), refs, domain.ModeFull)
		require.NoError(t, err)
	}

	first := t.TempDir()
	second := t.TempDir()
	runOnce(first)
	runOnce(second)

	// Text and summary artifacts are byte-identical across runs.
	for _, name := range []string{"a_text.txt", "b_text.txt", artifacts.SummaryFileName} {
		want, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	// Metadata differs only in the processing timestamp.
	for _, name := range []string{"a_metadata.json", "b_metadata.json"} {
		assert.Equal(t,
			metadataFields(t, filepath.Join(first, name)),
			metadataFields(t, filepath.Join(second, name)), name)
	}
}

// metadataFields reads a metadata artifact with its timestamp removed.
func metadataFields(t *testing.T, path string) map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	delete(fields, "processed_at")
	return fields
}

func TestRun_ArtifactWriteFailureFailsItem(t *testing.T) {
	artifacts := newMemArtifacts()
	artifacts.metaErr = fmt.Errorf("disk full")
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, artifacts, nil)

	summary, err := o.Run(context.Background(), localRefs("a.pdf"), domain.ModeFull)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
}

func TestRun_HistoryPersisted(t *testing.T) {
	store := newMemRunStore()
	artifacts := newMemArtifacts()
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 7}, artifacts, store)

	summary, err := o.Run(context.Background(), localRefs("a.pdf", "b.pdf"), domain.ModeQuick)
	require.NoError(t, err)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, domain.ModeQuick, run.Mode)
	assert.Equal(t, *summary, run.Summary)
	assert.Equal(t, 14, run.Stats.TotalPages)
	assert.Equal(t, 2, run.Stats.WithSinhala)
	assert.Len(t, store.records[run.ID], 2)
}

func TestRun_NoRunStoreIsFine(t *testing.T) {
	o := NewPipelineOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, fakeClassifier{}, newMemArtifacts(), nil, 1)
	_, err := o.Run(context.Background(), localRefs("a.pdf"), domain.ModeFull)
	assert.NoError(t, err)
}

func TestStatus_IdleAndRunning(t *testing.T) {
	o := newTestOrchestrator(&fakeFetcher{}, &fakeExtractor{pages: 1}, newMemArtifacts(), nil)

	status, err := o.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Zero(t, status.Processed)

	_, err = o.Run(context.Background(), localRefs("a.pdf"), domain.ModeFull)
	require.NoError(t, err)

	// Status is cleared once the run finishes.
	status, err = o.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
}
