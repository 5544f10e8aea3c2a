package drive

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

// RefKind distinguishes file and folder URLs.
type RefKind int

const (
	// RefFile is a URL pointing at a single Drive file.
	RefFile RefKind = iota

	// RefFolder is a URL pointing at a Drive folder.
	RefFolder
)

// ParsedRef is the outcome of parsing a Drive URL.
type ParsedRef struct {
	Kind RefKind
	ID   string
}

// ParseURL extracts the file or folder ID from the Drive URL shapes in
// the wild:
//
//	https://drive.google.com/file/d/{id}/view
//	https://drive.google.com/drive/folders/{id}
//	https://drive.google.com/open?id={id}
//	https://drive.google.com/uc?id={id}&export=download
func ParseURL(raw string) (*ParsedRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	for i, seg := range segments {
		switch seg {
		case "d":
			// /file/d/{id}/...
			if i+1 < len(segments) && segments[i+1] != "" {
				return &ParsedRef{Kind: RefFile, ID: segments[i+1]}, nil
			}
		case "folders":
			// /drive/folders/{id}
			if i+1 < len(segments) && segments[i+1] != "" {
				return &ParsedRef{Kind: RefFolder, ID: segments[i+1]}, nil
			}
		}
	}

	// /open?id={id} and /uc?id={id}
	if id := u.Query().Get("id"); id != "" {
		return &ParsedRef{Kind: RefFile, ID: id}, nil
	}

	return nil, fmt.Errorf("%w: unrecognised Drive URL %q", domain.ErrInvalidInput, raw)
}

// FileURL builds the canonical web URL for a Drive file ID.
func FileURL(id string) string {
	return "https://drive.google.com/file/d/" + id + "/view"
}

// FolderURL builds the canonical web URL for a Drive folder ID.
func FolderURL(id string) string {
	return "https://drive.google.com/drive/folders/" + id
}
