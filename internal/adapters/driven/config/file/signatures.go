package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docfeed-cli/internal/script"
)

// SignatureStore loads legacy font signature tables from a
// user-editable TOML file, falling back to the built-in table.
//
// The store uses lazy initialisation - the file is only created when
// first accessed, not in the constructor. This makes testing easier and
// avoids unexpected I/O.
type SignatureStore struct {
	mu       sync.RWMutex
	filePath string
	cache    []script.Signature
	initOnce sync.Once
	initErr  error
}

// signatureFile is the on-disk TOML shape.
type signatureFile struct {
	Signatures []signatureEntry `toml:"signatures"`
}

type signatureEntry struct {
	Name           string   `toml:"name"`
	Marker         string   `toml:"marker"`
	MarkerRatio    float64  `toml:"marker_ratio"`
	Patterns       []string `toml:"patterns"`
	MinPatternHits int      `toml:"min_pattern_hits"`
}

// NewSignatureStore creates a new file-based signature store.
// If configDir is empty, defaults to ~/.docfeed/signatures.toml.
//
// The constructor does not perform any I/O - the file is read (and
// seeded with defaults when absent) lazily on first Load() call.
func NewSignatureStore(configDir string) (*SignatureStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".docfeed")
	}

	return &SignatureStore{
		filePath: filepath.Join(configDir, "signatures.toml"),
	}, nil
}

// Load returns the signature table, seeding the file with the built-in
// defaults on first use so users have a template to edit.
func (s *SignatureStore) Load() ([]script.Signature, error) {
	s.initOnce.Do(s.init)
	if s.initErr != nil {
		return nil, s.initErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]script.Signature, len(s.cache))
	copy(out, s.cache)
	return out, nil
}

// Path returns the signature file path.
func (s *SignatureStore) Path() string {
	return s.filePath
}

func (s *SignatureStore) init() {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.initErr = s.seed()
		return
	}
	if err != nil {
		s.initErr = fmt.Errorf("read signature file: %w", err)
		return
	}

	var parsed signatureFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		s.initErr = fmt.Errorf("parse signature file: %w", err)
		return
	}

	signatures := make([]script.Signature, 0, len(parsed.Signatures))
	for _, entry := range parsed.Signatures {
		sig := script.Signature{
			Name:           entry.Name,
			MarkerRatio:    entry.MarkerRatio,
			Patterns:       entry.Patterns,
			MinPatternHits: entry.MinPatternHits,
		}
		if entry.Marker != "" {
			sig.Marker = []rune(entry.Marker)[0]
		}
		signatures = append(signatures, sig)
	}

	s.mu.Lock()
	s.cache = signatures
	s.mu.Unlock()
}

// seed writes the built-in table to disk and caches it.
func (s *SignatureStore) seed() error {
	defaults := script.DefaultSignatures()

	out := signatureFile{Signatures: make([]signatureEntry, 0, len(defaults))}
	for _, sig := range defaults {
		entry := signatureEntry{
			Name:           sig.Name,
			MarkerRatio:    sig.MarkerRatio,
			Patterns:       sig.Patterns,
			MinPatternHits: sig.MinPatternHits,
		}
		if sig.Marker != 0 {
			entry.Marker = string(sig.Marker)
		}
		out.Signatures = append(out.Signatures, entry)
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal default signatures: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write default signatures: %w", err)
	}

	s.mu.Lock()
	s.cache = defaults
	s.mu.Unlock()
	return nil
}
