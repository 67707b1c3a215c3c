package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrTopicNotFound indicates a topic name absent from the catalog.
	// A rejected selection leaves the user's previous topic unchanged.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrFileTooLarge indicates the declared size exceeds the configured
	// limit. Detected before any upload attempt; never retried.
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrMIMENotAllowed indicates the declared MIME type is outside the
	// configured allow-list. Detected before any upload attempt.
	ErrMIMENotAllowed = errors.New("mime type not allowed")

	// ErrAuthFailed indicates the storage service rejected our credentials.
	// Fatal for the destination; not retried.
	ErrAuthFailed = errors.New("storage authentication failed")

	// ErrPermissionDenied indicates the credentials lack access to the
	// destination folder. Not retried.
	ErrPermissionDenied = errors.New("storage permission denied")

	// ErrFolderNotFound indicates the destination folder id does not exist.
	ErrFolderNotFound = errors.New("destination folder not found")

	// ErrUploadExhausted indicates a transient storage failure persisted
	// beyond the bounded retry budget.
	ErrUploadExhausted = errors.New("upload failed after retries")

	// ErrDuplicateTopic indicates the catalog declares the same topic name
	// twice. Fatal at startup.
	ErrDuplicateTopic = errors.New("duplicate topic name")

	// ErrInvalidCatalog indicates a malformed catalog entry. Fatal at
	// startup.
	ErrInvalidCatalog = errors.New("invalid topic catalog")
)

// FailureReason classifies a terminal failure for user-visible reporting.
type FailureReason string

// Failure reasons.
const (
	ReasonNone             FailureReason = ""
	ReasonTooLarge         FailureReason = "too_large"
	ReasonDisallowedType   FailureReason = "disallowed_type"
	ReasonTransientUpload  FailureReason = "transient_upload_failure"
	ReasonPermissionDenied FailureReason = "permission_denied"
	ReasonAuthFailure      FailureReason = "auth_failure"
	ReasonUnknown          FailureReason = "unknown"
)

// ClassifyError maps an error to its user-visible failure reason.
// Unrecognised errors are treated as exhausted transient failures: by the
// time an error reaches classification the storage client has already spent
// its retry budget on anything retryable.
func ClassifyError(err error) FailureReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrFileTooLarge):
		return ReasonTooLarge
	case errors.Is(err, ErrMIMENotAllowed):
		return ReasonDisallowedType
	case errors.Is(err, ErrAuthFailed):
		return ReasonAuthFailure
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrFolderNotFound):
		return ReasonPermissionDenied
	case errors.Is(err, ErrUploadExhausted):
		return ReasonTransientUpload
	default:
		return ReasonTransientUpload
	}
}

// IsPolicyViolation reports whether err was raised by the pre-upload
// size/MIME policy check.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrMIMENotAllowed)
}
