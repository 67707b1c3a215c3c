// Package drive implements the ArchiveStore over the Google Drive v3 API.
//
// Authentication uses a service account key, supplied either as a file path
// or as the raw JSON itself. Content is uploaded straight from memory or a
// stream; nothing touches local disk. Transient API failures are retried
// with exponential backoff behind a proactive rate limiter.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/retry"
	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
)

// Drive MIME types.
const (
	mimeTypeFolder      = "application/vnd.google-apps.folder"
	mimeTypeGoogleDoc   = "application/vnd.google-apps.document"
	mimeTypeOctetStream = "application/octet-stream"
	mimeTypePlainText   = "text/plain"
)

// TextMode selects how text notes are stored.
type TextMode string

const (
	// TextModePlain stores notes as <base>.txt files.
	TextModePlain TextMode = "txt"
	// TextModeDoc converts notes into Google Docs.
	TextModeDoc TextMode = "doc"
)

// Ensure Client implements the interface.
var _ driven.ArchiveStore = (*Client)(nil)

// Config configures the Drive archive store.
type Config struct {
	// Credentials is the service-account key: a path to the JSON file, or
	// the JSON itself.
	Credentials string

	Policy   domain.UploadPolicy
	TextMode TextMode

	// MaxAttempts bounds retries per API call, including the first attempt.
	MaxAttempts uint64
}

// Client is the Google Drive implementation of driven.ArchiveStore.
type Client struct {
	svc      *gdrive.Service
	policy   domain.UploadPolicy
	textMode TextMode
	limiter  *RateLimiter
	retryCfg retry.Config
	log      zerolog.Logger
}

// NewClient authenticates with the configured service account and returns
// a ready client.
func NewClient(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	data, err := credentialsJSON(cfg.Credentials)
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(data, gdrive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	svc, err := gdrive.NewService(ctx, option.WithTokenSource(jwt.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return newClient(svc, cfg, log), nil
}

// newClient wires a client around an existing Drive service.
func newClient(svc *gdrive.Service, cfg Config, log zerolog.Logger) *Client {
	if cfg.TextMode != TextModeDoc {
		cfg.TextMode = TextModePlain
	}
	return &Client{
		svc:      svc,
		policy:   cfg.Policy,
		textMode: cfg.TextMode,
		limiter:  NewRateLimiter(),
		retryCfg: retry.Config{MaxAttempts: cfg.MaxAttempts},
		log:      log.With().Str("component", "drive").Logger(),
	}
}

// credentialsJSON resolves the configured key to its JSON bytes.
func credentialsJSON(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("google service account credentials are required")
	}
	if strings.HasPrefix(value, "{") {
		return []byte(value), nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}
	return data, nil
}

// CheckPolicy implements driven.ArchiveStore.
func (c *Client) CheckPolicy(size int64, mimeType string) error {
	return c.policy.Check(size, mimeType)
}

// CreateFolder implements driven.ArchiveStore.
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	meta := &gdrive.File{
		Name:     name,
		MimeType: mimeTypeFolder,
		Parents:  []string{parentID},
	}

	var id string
	err := c.do(ctx, func() error {
		f, err := c.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
		if err != nil {
			return wrapError(err)
		}
		id = f.Id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}

	c.log.Debug().Str("folder", id).Str("name", name).Str("parent", parentID).Msg("folder created")
	return id, nil
}

// UploadFile implements driven.ArchiveStore. When r implements io.Seeker
// the upload is rewound and retried on transient failures; a plain stream
// gets a single attempt (the API client still retries individual chunks
// internally).
func (c *Client) UploadFile(ctx context.Context, folderID, filename string, r io.Reader, size int64, mimeType string) (string, error) {
	if err := c.policy.Check(size, mimeType); err != nil {
		return "", err
	}
	if mimeType == "" {
		mimeType = mimeTypeOctetStream
	}

	meta := &gdrive.File{
		Name:    filename,
		Parents: []string{folderID},
	}

	seeker, rewindable := r.(io.Seeker)
	first := true

	var id string
	attempt := func() error {
		if !first {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("%w: rewind content: %v", domain.ErrUploadExhausted, err)
			}
		}
		first = false

		f, err := c.svc.Files.Create(meta).
			Media(r, googleapi.ContentType(mimeType)).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return wrapError(err)
		}
		id = f.Id
		return nil
	}

	var err error
	if rewindable {
		err = c.do(ctx, attempt)
	} else {
		err = c.once(ctx, attempt)
	}
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", filename, err)
	}

	c.log.Debug().Str("file", id).Str("name", filename).Str("folder", folderID).Msg("file uploaded")
	return id, nil
}

// UploadNote implements driven.ArchiveStore. Depending on the text mode
// the note becomes a plain .txt file or is converted into a Google Doc.
func (c *Client) UploadNote(ctx context.Context, folderID, baseName, content string) (string, error) {
	meta := &gdrive.File{Parents: []string{folderID}}
	if c.textMode == TextModeDoc {
		meta.Name = baseName
		meta.MimeType = mimeTypeGoogleDoc
	} else {
		meta.Name = baseName + ".txt"
	}

	var id string
	err := c.do(ctx, func() error {
		f, err := c.svc.Files.Create(meta).
			Media(strings.NewReader(content), googleapi.ContentType(mimeTypePlainText)).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return wrapError(err)
		}
		id = f.Id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("upload note %q: %w", meta.Name, err)
	}

	c.log.Debug().Str("file", id).Str("name", meta.Name).Str("folder", folderID).Msg("note uploaded")
	return id, nil
}

// do runs fn behind the rate limiter with the retry budget, mapping an
// exhausted budget onto domain.ErrUploadExhausted.
func (c *Client) do(ctx context.Context, fn func() error) error {
	err := retry.Do(ctx, c.retryCfg, isTransient, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		err := fn()
		c.recordRateLimit(err)
		return err
	})
	return exhausted(err)
}

// once runs fn a single time behind the rate limiter.
func (c *Client) once(ctx context.Context, fn func() error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	err := fn()
	c.recordRateLimit(err)
	return exhausted(err)
}

// recordRateLimit feeds 429 responses back into the limiter.
func (c *Client) recordRateLimit(err error) {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != 429 {
		return
	}
	seconds, _ := strconv.Atoi(gerr.Header.Get("Retry-After"))
	c.limiter.RecordRateLimitError(seconds)
	c.log.Warn().Int("retry_after", seconds).Msg("drive rate limit hit")
}

// exhausted marks surviving transient errors as a spent retry budget.
func exhausted(err error) error {
	if err == nil || !isTransient(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUploadExhausted, err)
}
