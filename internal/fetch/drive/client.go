package drive

import (
	"context"
	"fmt"
	"io"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// MimeTypeFolder marks Drive folders in listings.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// DefaultPageSize is the listing page size for folder expansion.
const DefaultPageSize = 100

// Ensure Client implements the interface.
var _ driven.StorageClient = (*Client)(nil)

// Auth configures access to the Drive API. Exactly one of the fields
// should be set: an API key covers public files, an access token covers
// anything the authenticated account can read.
type Auth struct {
	APIKey      string
	AccessToken string
}

// Client is the Google Drive storage client.
type Client struct {
	svc      *gdrive.Service
	limiter  *RateLimiter
	pageSize int64
}

// NewClient creates a Drive client with the given authentication.
func NewClient(ctx context.Context, auth Auth) (*Client, error) {
	var opt option.ClientOption
	switch {
	case auth.AccessToken != "":
		opt = option.WithTokenSource(NewTokenSource(ctx, StaticToken(auth.AccessToken)))
	case auth.APIKey != "":
		opt = option.WithAPIKey(auth.APIKey)
	default:
		return nil, fmt.Errorf("%w: drive credentials not configured", domain.ErrInvalidInput)
	}

	svc, err := gdrive.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return newClient(svc), nil
}

// newClient wraps an existing Drive service. Split out for tests.
func newClient(svc *gdrive.Service) *Client {
	return &Client{
		svc:      svc,
		limiter:  NewRateLimiter(),
		pageSize: DefaultPageSize,
	}
}

// Resolve lists the file refs behind a Drive URL. A file URL yields one
// ref; a folder URL yields one ref per non-folder entry, each carrying
// the listed file name.
func (c *Client) Resolve(ctx context.Context, rawURL string) ([]domain.SourceRef, error) {
	parsed, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if parsed.Kind == RefFile {
		ref := domain.RemoteFileRef(FileURL(parsed.ID))
		return []domain.SourceRef{ref}, nil
	}

	return c.listFolder(ctx, parsed.ID)
}

// listFolder pages through a folder's direct children.
func (c *Client) listFolder(ctx context.Context, folderID string) ([]domain.SourceRef, error) {
	var refs []domain.SourceRef
	pageToken := ""

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
			Fields("nextPageToken, files(id, name, mimeType, size)").
			PageSize(c.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			c.recordIfRateLimited(err)
			return nil, fmt.Errorf("list folder %s: %w", folderID, WrapError(err))
		}

		for _, f := range page.Files {
			if f.MimeType == MimeTypeFolder {
				logger.Debug("Skipping nested folder %s (%s)", f.Name, f.Id)
				continue
			}
			ref := domain.RemoteFileRef(FileURL(f.Id))
			ref.Name = f.Name
			refs = append(refs, ref)
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return refs, nil
		}
	}
}

// Stat reads a file's name and size without downloading it.
func (c *Client) Stat(ctx context.Context, ref domain.SourceRef) (string, int64, error) {
	parsed, err := ParseURL(ref.URL)
	if err != nil {
		return "", 0, err
	}
	if parsed.Kind != RefFile {
		return "", 0, fmt.Errorf("%w: stat on folder URL", domain.ErrInvalidInput)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", 0, err
	}

	f, err := c.svc.Files.Get(parsed.ID).Fields("name", "size").Context(ctx).Do()
	if err != nil {
		c.recordIfRateLimited(err)
		return "", 0, fmt.Errorf("stat file %s: %w", parsed.ID, WrapError(err))
	}

	return f.Name, f.Size, nil
}

// Download streams a file's content into w, writing at most maxBytes.
// Returns domain.ErrSizeExceeded the instant the ceiling is crossed.
func (c *Client) Download(ctx context.Context, ref domain.SourceRef, w io.Writer, maxBytes int64) (int64, error) {
	parsed, err := ParseURL(ref.URL)
	if err != nil {
		return 0, err
	}
	if parsed.Kind != RefFile {
		return 0, fmt.Errorf("%w: download on folder URL", domain.ErrInvalidInput)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	resp, err := c.svc.Files.Get(parsed.ID).Context(ctx).Download()
	if err != nil {
		c.recordIfRateLimited(err)
		return 0, fmt.Errorf("download file %s: %w", parsed.ID, WrapError(err))
	}
	defer resp.Body.Close()

	// Read one byte past the ceiling so crossing it is detectable
	// without buffering the payload.
	written, err := io.Copy(w, io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return written, fmt.Errorf("%w: copy body: %v", domain.ErrNetwork, err)
	}
	if written > maxBytes {
		return written, fmt.Errorf("%w: download exceeds %d bytes", domain.ErrSizeExceeded, maxBytes)
	}

	return written, nil
}

// recordIfRateLimited feeds 429 responses back into the limiter.
func (c *Client) recordIfRateLimited(err error) {
	if IsRateLimited(err) {
		c.limiter.RecordRateLimitError(0)
	}
}
