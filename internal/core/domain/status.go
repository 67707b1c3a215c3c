package domain

// Status is one of the three user-visible pipeline states. Processing is
// transient; exactly one terminal state (success or failure) is reached per
// item and always supersedes it.
type Status int

const (
	// StatusProcessing is emitted before any network work starts.
	StatusProcessing Status = iota

	// StatusSuccess means the item was archived.
	StatusSuccess

	// StatusFailure means the item's pipeline run terminated with an error.
	StatusFailure
)

// String returns the lowercase state name.
func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a pipeline run.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// UploadResult is the terminal outcome of one pipeline run. Produced once
// per InboundItem and never persisted.
type UploadResult struct {
	Status Status

	// FolderID is the resolved destination folder.
	FolderID string

	// FileID references the stored file on success.
	FileID string

	// Reason classifies the failure for user-visible reporting.
	Reason FailureReason

	// Err carries the underlying error on failure.
	Err error
}

// Success builds a successful result.
func Success(folderID, fileID string) UploadResult {
	return UploadResult{Status: StatusSuccess, FolderID: folderID, FileID: fileID}
}

// Failure builds a failed result, classifying err into a FailureReason.
func Failure(err error) UploadResult {
	return UploadResult{Status: StatusFailure, Reason: ClassifyError(err), Err: err}
}
