package driven

import (
	"context"
	"io"
)

// ArchiveStore writes archived content into the remote storage service.
// Implementations retry transient failures internally with exponential
// backoff; errors that escape wrap the domain sentinels so callers can
// classify them. The core does not depend on any storage-specific feature
// beyond "create folder under parent" and "upload named bytes under folder".
type ArchiveStore interface {
	// CheckPolicy validates a declared size and MIME type against the
	// configured upload policy without touching the network.
	CheckPolicy(size int64, mimeType string) error

	// CreateFolder creates a folder under parentID and returns its id.
	CreateFolder(ctx context.Context, parentID, name string) (string, error)

	// UploadFile stores the content of r as a named file under folderID.
	// Content is streamed or held in memory, never written to local disk.
	// If r implements io.Seeker the upload may be retried from the start.
	UploadFile(ctx context.Context, folderID, filename string, r io.Reader, size int64, mimeType string) (string, error)

	// UploadNote stores a text note under folderID. The backend decides the
	// final form: a plain <baseName>.txt or a structured document,
	// depending on the configured text render mode.
	UploadNote(ctx context.Context, folderID, baseName, content string) (string, error)
}
