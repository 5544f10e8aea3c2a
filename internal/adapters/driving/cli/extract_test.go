package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/extract"
)

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [file.pdf]", extractCmd.Use)
}

func TestExtractCmd_PrintsText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("extract", "/data/paper.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "text of /data/paper.pdf")
	assert.Contains(t, out, "Strategy: FAST")
}

func TestExtractCmd_Unreadable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	docExtractor = &stubExtractor{err: fmt.Errorf("%w: all strategies failed", domain.ErrUnreadablePDF)}

	_, err := execute("extract", "/data/blank.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadablePDF)
}

func TestClassifyCmd_PrintsVerdict(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("classify", "/data/paper.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:      VALID_SINHALA")
	assert.Contains(t, out, "Sinhala:     true")
	assert.Contains(t, out, "Legacy font: false")
}

func TestClassifyCmd_LegacyFont(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	docClassifier = &stubClassifier{verdict: domain.ScriptVerdict{
		LegacyFontDetected: true,
		Status:             domain.StatusLegacyFont,
	}}

	out, err := execute("classify", "/data/old.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:      LEGACY_FONT")
	assert.Contains(t, out, "Legacy font: true")
}

func TestInfoCmd_PrintsStructure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("info", "/data/paper.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Pages:  10")
	assert.Contains(t, out, "Valid:  true")
}

func TestInfoCmd_NotPDF(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	inspectFile = func(path string) (*extract.DocInfo, error) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, path)
	}

	_, err := execute("info", "/data/notes.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotPDF)
}

func TestExtractCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	docExtractor = nil

	_, err := execute("extract", "/data/paper.pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	_, err = execute("classify", "/data/paper.pdf")
	assert.Error(t, err)
}

func TestFetchCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("fetch", "https://drive.google.com/file/d/abc/view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
