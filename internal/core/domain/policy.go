package domain

import "fmt"

// DefaultMaxFileSize caps uploads at 20 MiB unless configured otherwise.
const DefaultMaxFileSize = 20 * 1024 * 1024

// UploadPolicy gates content before any network call is made.
// A zero AllowedMIMETypes list is permissive.
type UploadPolicy struct {
	MaxFileSize      int64
	AllowedMIMETypes []string
}

// Check validates a declared size and MIME type against the policy.
// It returns ErrFileTooLarge or ErrMIMENotAllowed (wrapped with detail)
// on violation. An empty MIME type passes: the transport does not always
// declare one and the storage service falls back to octet-stream.
func (p UploadPolicy) Check(size int64, mimeType string) error {
	limit := p.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	if size > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, size, limit)
	}

	if len(p.AllowedMIMETypes) == 0 || mimeType == "" {
		return nil
	}
	for _, allowed := range p.AllowedMIMETypes {
		if mimeType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMIMENotAllowed, mimeType)
}
