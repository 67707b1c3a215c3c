package domain

// Topic is a named archival destination. Each topic maps to one folder in
// the remote storage service and doubles as a command alias on the chat
// transport. Topics are immutable after the catalog is loaded.
type Topic struct {
	// Name uniquely identifies the topic. Always lower case; it is used
	// verbatim as a command alias (/work, /marketing, ...).
	Name string

	// Hashtag is prepended to archived text notes, e.g. "#work".
	Hashtag string

	// Description is shown in topic listings.
	Description string

	// FolderID is the opaque identifier of the topic's destination folder
	// in the storage service.
	FolderID string
}
