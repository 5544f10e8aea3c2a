package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docfeed-cli/internal/extract"
)

// stubRunner records the refs it was handed and returns a fixed summary.
type stubRunner struct {
	refs    []domain.SourceRef
	mode    domain.Mode
	summary *domain.RunSummary
	err     error
}

func (r *stubRunner) Run(_ context.Context, refs []domain.SourceRef, mode domain.Mode) (*domain.RunSummary, error) {
	r.refs = refs
	r.mode = mode
	if r.err != nil {
		return nil, r.err
	}
	if r.summary != nil {
		return r.summary, nil
	}
	summary := &domain.RunSummary{}
	for _, ref := range refs {
		summary.Add(&domain.DocumentRecord{FileName: ref.Display(), Status: domain.StatusOK})
	}
	return summary, nil
}

func (r *stubRunner) Status(_ context.Context) (*driving.RunStatus, error) {
	return &driving.RunStatus{}, nil
}

type stubExtractor struct {
	result *domain.ExtractionResult
	err    error
}

func (e *stubExtractor) Extract(_ context.Context, path string, _ domain.Mode) (*domain.ExtractionResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.result != nil {
		return e.result, nil
	}
	return &domain.ExtractionResult{Text: "text of " + path, PageCount: 3, StrategyUsed: domain.StrategyFast}, nil
}

func (e *stubExtractor) PageCount(string) (int, error) { return 3, nil }

type stubClassifier struct {
	verdict domain.ScriptVerdict
}

func (c *stubClassifier) Classify(string) domain.ScriptVerdict { return c.verdict }

type stubRunStore struct {
	runs    []domain.Run
	records map[string][]domain.DocumentRecord
}

func (s *stubRunStore) SaveRun(context.Context, *domain.Run) error { return nil }
func (s *stubRunStore) SaveRecord(context.Context, string, *domain.DocumentRecord) error {
	return nil
}

func (s *stubRunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	for i := range s.runs {
		if s.runs[i].ID == id {
			return &s.runs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
}

func (s *stubRunStore) ListRuns(context.Context) ([]domain.Run, error) { return s.runs, nil }

func (s *stubRunStore) ListRecords(_ context.Context, runID string) ([]domain.DocumentRecord, error) {
	return s.records[runID], nil
}

func (s *stubRunStore) Close() error { return nil }

// setupTestServices wires stub services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	prevRunner, prevExtractor := pipelineRunner, docExtractor
	prevClassifier, prevStore := docClassifier, runStore
	prevInspect := inspectFile
	runMode, watchMode = "full", "full"

	pipelineRunner = &stubRunner{}
	docExtractor = &stubExtractor{}
	docClassifier = &stubClassifier{verdict: domain.ScriptVerdict{HasSinhala: true, Status: domain.StatusValidSinhala}}
	runStore = &stubRunStore{}
	inspectFile = func(path string) (*extract.DocInfo, error) {
		return &extract.DocInfo{Path: path, ByteSize: 2048, PageCount: 10, Valid: true}, nil
	}

	return func() {
		pipelineRunner, docExtractor = prevRunner, prevExtractor
		docClassifier, runStore = prevClassifier, prevStore
		inspectFile = prevInspect
	}
}

// execute runs the root command with args and captures combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
