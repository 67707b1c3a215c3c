package domain

import "time"

// Batch groups the items of one multi-item send into a single destination
// subfolder. All items sharing a correlation id within the debounce window
// resolve to the same subfolder, which is created at most once.
type Batch struct {
	// GroupID is the transport-supplied correlation id.
	GroupID string

	// FolderID is the subfolder created for the batch.
	FolderID string

	CreatedAt time.Time

	// LastSeen is refreshed on every member arrival and drives eviction.
	LastSeen time.Time

	// Members counts items resolved through this batch.
	Members int
}

// BatchFolderName derives the deterministic subfolder name from the arrival
// time of the batch's first member.
func BatchFolderName(t time.Time) string {
	return "Album_" + t.Format("20060102_150405")
}
