// Package dropbox implements the ArchiveStore over the Dropbox API.
//
// Dropbox addresses content by path rather than by opaque id, so folder
// identifiers handed back to the core are lowercase folder paths. Notes are
// always stored as .txt files: Dropbox has no document conversion.
package dropbox

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/retry"
	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ArchiveStore = (*Client)(nil)

// Config configures the Dropbox archive store.
type Config struct {
	// Token is a Dropbox API access token.
	Token string

	Policy domain.UploadPolicy

	// MaxAttempts bounds retries per API call, including the first attempt.
	MaxAttempts uint64
}

// Client is the Dropbox implementation of driven.ArchiveStore.
type Client struct {
	files    files.Client
	policy   domain.UploadPolicy
	retryCfg retry.Config
	log      zerolog.Logger
}

// NewClient creates a Dropbox archive store.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("dropbox access token is required")
	}

	return &Client{
		files:    files.New(dropbox.Config{Token: cfg.Token}),
		policy:   cfg.Policy,
		retryCfg: retry.Config{MaxAttempts: cfg.MaxAttempts},
		log:      log.With().Str("component", "dropbox").Logger(),
	}, nil
}

// CheckPolicy implements driven.ArchiveStore.
func (c *Client) CheckPolicy(size int64, mimeType string) error {
	return c.policy.Check(size, mimeType)
}

// CreateFolder implements driven.ArchiveStore. The returned id is the
// folder's lowercase path.
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	target := joinPath(parentID, name)

	var folderPath string
	err := retry.Do(ctx, c.retryCfg, isTransient, func() error {
		res, err := c.files.CreateFolderV2(files.NewCreateFolderArg(target))
		if err != nil {
			return wrapError(err)
		}
		folderPath = res.Metadata.PathLower
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", target, exhausted(err))
	}

	c.log.Debug().Str("folder", folderPath).Msg("folder created")
	return folderPath, nil
}

// UploadFile implements driven.ArchiveStore. Uploads are retried only when
// the content can be rewound.
func (c *Client) UploadFile(ctx context.Context, folderID, filename string, r io.Reader, size int64, mimeType string) (string, error) {
	if err := c.policy.Check(size, mimeType); err != nil {
		return "", err
	}

	target := joinPath(folderID, filename)
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

		arg := files.NewUploadArg(target)
		arg.Autorename = true
		meta, err := c.files.Upload(arg, r)
		if err != nil {
			return wrapError(err)
		}
		id = meta.Id
		return nil
	}

	var err error
	if rewindable {
		err = retry.Do(ctx, c.retryCfg, isTransient, attempt)
	} else {
		err = attempt()
	}
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", target, exhausted(err))
	}

	c.log.Debug().Str("file", id).Str("path", target).Msg("file uploaded")
	return id, nil
}

// UploadNote implements driven.ArchiveStore. Notes degrade to plain .txt
// regardless of the configured text render mode.
func (c *Client) UploadNote(ctx context.Context, folderID, baseName, content string) (string, error) {
	return c.UploadFile(ctx, folderID, baseName+".txt",
		strings.NewReader(content), int64(len(content)), "text/plain")
}

// joinPath builds a Dropbox path under parent. An empty parent is the root.
func joinPath(parent, name string) string {
	parent = strings.TrimSuffix(parent, "/")
	if parent == "" {
		return "/" + name
	}
	if !strings.HasPrefix(parent, "/") {
		parent = "/" + parent
	}
	return parent + "/" + name
}
