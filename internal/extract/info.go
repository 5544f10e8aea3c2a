package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// DocInfo describes a PDF without extracting its text.
type DocInfo struct {
	Path      string
	ByteSize  int64
	PageCount int
	Valid     bool
}

// Info validates a PDF and reads its page count and size.
func Info(path string) (*DocInfo, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, path)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	info := &DocInfo{
		Path:     path,
		ByteSize: fi.Size(),
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return info, nil
	}
	info.Valid = true

	n, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}
	info.PageCount = n

	return info, nil
}
