package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind RefKind
		wantID   string
	}{
		{
			name:     "file view URL",
			url:      "https://drive.google.com/file/d/1AbC-dEf_123/view?usp=sharing",
			wantKind: RefFile,
			wantID:   "1AbC-dEf_123",
		},
		{
			name:     "file URL without suffix",
			url:      "https://drive.google.com/file/d/1AbC-dEf_123",
			wantKind: RefFile,
			wantID:   "1AbC-dEf_123",
		},
		{
			name:     "folder URL",
			url:      "https://drive.google.com/drive/folders/9XyZ_987",
			wantKind: RefFolder,
			wantID:   "9XyZ_987",
		},
		{
			name:     "folder URL with query",
			url:      "https://drive.google.com/drive/folders/9XyZ_987?usp=drive_link",
			wantKind: RefFolder,
			wantID:   "9XyZ_987",
		},
		{
			name:     "open URL",
			url:      "https://drive.google.com/open?id=1AbC",
			wantKind: RefFile,
			wantID:   "1AbC",
		},
		{
			name:     "uc download URL",
			url:      "https://drive.google.com/uc?id=1AbC&export=download",
			wantKind: RefFile,
			wantID:   "1AbC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, parsed.Kind)
			assert.Equal(t, tt.wantID, parsed.ID)
		})
	}
}

func TestParseURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no id", "https://drive.google.com/drive/my-drive"},
		{"bare host", "https://drive.google.com"},
		{"trailing d", "https://drive.google.com/file/d/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", FileURL("abc"))
}

func TestFolderURL(t *testing.T) {
	assert.Equal(t, "https://drive.google.com/drive/folders/abc", FolderURL("abc"))
}

func TestRoundTrip(t *testing.T) {
	parsed, err := ParseURL(FileURL("1AbC"))
	require.NoError(t, err)
	assert.Equal(t, RefFile, parsed.Kind)
	assert.Equal(t, "1AbC", parsed.ID)

	parsed, err = ParseURL(FolderURL("9XyZ"))
	require.NoError(t, err)
	assert.Equal(t, RefFolder, parsed.Kind)
	assert.Equal(t, "9XyZ", parsed.ID)
}
