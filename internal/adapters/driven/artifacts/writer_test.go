package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	text := "සිංහල පෙළ sample\nwith newline"
	require.NoError(t, w.WriteText("2019_al_physics", text))

	data, err := os.ReadFile(filepath.Join(dir, "2019_al_physics_text.txt"))
	require.NoError(t, err)
	assert.Equal(t, text, string(data))

	// UTF-8 without a byte order mark.
	assert.NotEqual(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteText_RewriteIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	text := "දෙවරක් ලියූ පෙළ identical twice"
	require.NoError(t, w.WriteText("paper", text))
	first, err := os.ReadFile(filepath.Join(dir, "paper_text.txt"))
	require.NoError(t, err)

	require.NoError(t, w.WriteText("paper", text))
	second, err := os.ReadFile(filepath.Join(dir, "paper_text.txt"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteMetadata(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	rec := &domain.DocumentRecord{
		ID:                 "internal-id",
		FileName:           "2019_al_physics.pdf",
		SourceURL:          "https://drive.google.com/file/d/abc/view",
		ByteSize:           1024,
		PageCount:          24,
		HasSinhala:         true,
		UnicodeStatus:      domain.StatusValidSinhala,
		ExtractionStrategy: domain.StrategyFast,
		TextLength:         9000,
		ProcessedAt:        time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:             domain.StatusOK,
	}
	require.NoError(t, w.WriteMetadata("2019_al_physics", rec))

	data, err := os.ReadFile(filepath.Join(dir, "2019_al_physics_metadata.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2019_al_physics.pdf", decoded["file_name"])
	assert.Equal(t, "VALID_SINHALA", decoded["unicode_status"])
	assert.Equal(t, "FAST", decoded["extraction_strategy"])
	assert.NotContains(t, decoded, "id", "internal ID never reaches the artifact")
	assert.NotContains(t, decoded, "error", "error is omitted when empty")
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	summary := &domain.RunSummary{
		Total: 2, OK: 1, Failed: 1,
		Files: []domain.FileSummary{
			{FileName: "a.pdf", Status: domain.StatusOK},
			{FileName: "b.pdf", Status: domain.StatusFailed},
		},
	}
	require.NoError(t, w.WriteSummary(summary))

	data, err := os.ReadFile(filepath.Join(dir, SummaryFileName))
	require.NoError(t, err)

	var decoded domain.RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *summary, decoded)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteText("doc", "text"))
	require.NoError(t, w.WriteSummary(&domain.RunSummary{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name()[1:], ".txt.", "temp files must not survive a write")
	}
	assert.Len(t, entries, 2)
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewWriter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
