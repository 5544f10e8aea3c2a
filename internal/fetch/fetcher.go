// Package fetch materialises source references on local disk. Local
// refs are validated in place; remote refs are downloaded through a
// StorageClient behind an origin allow-list, a byte ceiling and bounded
// retries for transient network failures.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	// DefaultMaxBytes is the per-file download ceiling.
	DefaultMaxBytes = 100 * 1024 * 1024

	// DefaultRetryAttempts is how many times a transient network
	// failure is retried before giving up.
	DefaultRetryAttempts = 3

	// DefaultBackoffBase is the first retry delay; each further attempt
	// doubles it.
	DefaultBackoffBase = 500 * time.Millisecond
)

// defaultAllowedOrigins are the hosts remote URLs may come from.
var defaultAllowedOrigins = []string{"drive.google.com", "docs.google.com"}

// Config tunes the fetcher.
type Config struct {
	// AllowedOrigins lists the hosts remote URLs are accepted from.
	AllowedOrigins []string

	// MaxBytes is the per-file size ceiling, applied to both remote
	// downloads and local files.
	MaxBytes int64

	// DownloadRoot is the directory downloads are written under. Every
	// downloaded file must resolve inside it.
	DownloadRoot string

	// RetryAttempts bounds retries of transient network failures.
	RetryAttempts int

	// BackoffBase is the initial retry delay, doubled per attempt.
	BackoffBase time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = defaultAllowedOrigins
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.DownloadRoot == "" {
		c.DownloadRoot = filepath.Join(os.TempDir(), "docfeed")
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	return c
}

// Fetcher implements driven.Fetcher on top of a StorageClient.
type Fetcher struct {
	cfg    Config
	client driven.StorageClient

	// now is swapped in tests.
	now func() time.Time
}

// New builds a Fetcher. client may be nil when only local refs will be
// fetched; any remote ref then fails with ErrInvalidInput.
func New(client driven.StorageClient, cfg Config) *Fetcher {
	return &Fetcher{
		cfg:    cfg.withDefaults(),
		client: client,
		now:    time.Now,
	}
}

// Fetch materialises a single-file ref on disk.
func (f *Fetcher) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.FetchResult, error) {
	switch ref.Kind {
	case domain.SourceLocal:
		return f.fetchLocal(ref)
	case domain.SourceRemoteFile:
		return f.fetchRemote(ctx, ref)
	case domain.SourceRemoteFolder:
		return nil, fmt.Errorf("%w: folder ref must be expanded before fetching", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown source kind %d", domain.ErrInvalidInput, ref.Kind)
	}
}

// Expand turns a folder ref into a flat list of file refs. Non-folder
// refs pass through as a one-element list.
func (f *Fetcher) Expand(ctx context.Context, ref domain.SourceRef) ([]domain.SourceRef, error) {
	if ref.Kind != domain.SourceRemoteFolder {
		return []domain.SourceRef{ref}, nil
	}

	if err := f.checkOrigin(ref.URL); err != nil {
		return nil, err
	}
	if f.client == nil {
		return nil, fmt.Errorf("%w: no storage client configured for remote refs", domain.ErrInvalidInput)
	}

	var refs []domain.SourceRef
	err := f.withRetry(ctx, "expand "+ref.URL, func() error {
		var err error
		refs, err = f.client.Resolve(ctx, ref.URL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("expand folder: %w", err)
	}

	files := refs[:0]
	for _, r := range refs {
		if r.Name != "" && !hasPDFExt(r.Name) {
			logger.Debug("Skipping non-PDF folder entry: %s", r.Name)
			continue
		}
		files = append(files, r)
	}
	logger.Debug("Expanded folder to %d file(s)", len(files))
	return files, nil
}

func (f *Fetcher) fetchLocal(ref domain.SourceRef) (*domain.FetchResult, error) {
	if !hasPDFExt(ref.Path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, ref.Path)
	}

	info, err := os.Stat(ref.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, ref.Path)
		}
		return nil, fmt.Errorf("stat local file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, ref.Path)
	}
	if info.Size() > f.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			domain.ErrSizeExceeded, ref.Path, info.Size(), f.cfg.MaxBytes)
	}

	return &domain.FetchResult{
		LocalPath:   ref.Path,
		ByteSize:    info.Size(),
		RetrievedAt: f.now(),
		Temporary:   false,
	}, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, ref domain.SourceRef) (*domain.FetchResult, error) {
	if err := f.checkOrigin(ref.URL); err != nil {
		return nil, err
	}
	if f.client == nil {
		return nil, fmt.Errorf("%w: no storage client configured for remote refs", domain.ErrInvalidInput)
	}

	name, size := ref.Name, int64(-1)
	if name == "" {
		err := f.withRetry(ctx, "stat "+ref.URL, func() error {
			var err error
			name, size, err = f.client.Stat(ctx, ref)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("stat remote file: %w", err)
		}
	}

	dest, err := f.destPath(name)
	if err != nil {
		return nil, err
	}
	if !hasPDFExt(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPDF, name)
	}
	if size > f.cfg.MaxBytes {
		// Reported size already over the ceiling: skip the download.
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			domain.ErrSizeExceeded, name, size, f.cfg.MaxBytes)
	}

	if err := os.MkdirAll(f.cfg.DownloadRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create download root: %w", err)
	}

	var written int64
	err = f.withRetry(ctx, "download "+name, func() error {
		var err error
		written, err = f.download(ctx, ref, dest)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched %s (%d bytes) -> %s", name, written, dest)
	return &domain.FetchResult{
		LocalPath:   dest,
		ByteSize:    written,
		OriginURL:   ref.URL,
		RetrievedAt: f.now(),
		Temporary:   true,
	}, nil
}

// download streams the remote file into a temp file next to dest and
// renames it into place, so dest is never observable half-written. On
// any failure the temp file is removed and dest is untouched.
func (f *Fetcher) download(ctx context.Context, ref domain.SourceRef, dest string) (int64, error) {
	tmp, err := os.CreateTemp(f.cfg.DownloadRoot, ".download-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := f.client.Download(ctx, ref, tmp, f.cfg.MaxBytes)
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close temp file: %w", cerr)
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("finalise download: %w", err)
	}
	return written, nil
}

// checkOrigin rejects URLs whose host is not on the allow-list. Runs
// before any network call.
func (f *Fetcher) checkOrigin(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q (https required)", domain.ErrOriginNotAllowed, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range f.cfg.AllowedOrigins {
		if host == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrOriginNotAllowed, host)
}

// destPath sanitises a remote file name and resolves it under the
// download root. Names that carry separators, parent references or NUL
// bytes are rejected rather than repaired.
func (f *Fetcher) destPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", domain.ErrPathTraversal, name)
	}

	root, err := filepath.Abs(f.cfg.DownloadRoot)
	if err != nil {
		return "", fmt.Errorf("resolve download root: %w", err)
	}
	dest := filepath.Join(root, name)
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel != name {
		return "", fmt.Errorf("%w: %q resolves outside download root", domain.ErrPathTraversal, name)
	}
	return dest, nil
}

// withRetry runs op, retrying with exponential backoff while the error
// is a transient network failure. Validation and auth failures are
// returned immediately.
func (f *Fetcher) withRetry(ctx context.Context, what string, op func() error) error {
	var err error
	delay := f.cfg.BackoffBase
	for attempt := 1; attempt <= f.cfg.RetryAttempts; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, domain.ErrNetwork) {
			return err
		}
		if attempt == f.cfg.RetryAttempts {
			break
		}
		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v",
			what, attempt, f.cfg.RetryAttempts, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", what, f.cfg.RetryAttempts, err)
}

func hasPDFExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
