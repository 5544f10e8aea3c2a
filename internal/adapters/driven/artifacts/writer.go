// Package artifacts implements the filesystem artifact contract: one
// text file and one metadata file per document plus a run summary,
// written into a single output directory.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
)

// SummaryFileName is the per-run aggregate artifact.
const SummaryFileName = "pipeline_summary.json"

// Ensure Writer implements the interface.
var _ driven.ArtifactStore = (*Writer)(nil)

// Writer persists artifacts under a single directory. Each write goes
// through a temp file and an atomic rename, so readers polling the
// directory never observe a half-written artifact.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteText persists extracted text as {stem}_text.txt, UTF-8 without
// a byte order mark.
func (w *Writer) WriteText(stem string, text string) error {
	return w.write(stem+"_text.txt", []byte(text))
}

// WriteMetadata persists a document record as {stem}_metadata.json.
func (w *Writer) WriteMetadata(stem string, rec *domain.DocumentRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return w.write(stem+"_metadata.json", append(data, '\n'))
}

// WriteSummary persists the run summary as pipeline_summary.json.
func (w *Writer) WriteSummary(summary *domain.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return w.write(SummaryFileName, append(data, '\n'))
}

func (w *Writer) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(w.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(w.dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalise %s: %w", name, err)
	}
	return nil
}
