package domain

import (
	"io"
	"time"
)

// ItemKind classifies inbound content.
type ItemKind string

// Supported item kinds.
const (
	KindText     ItemKind = "text"
	KindPhoto    ItemKind = "photo"
	KindVideo    ItemKind = "video"
	KindVoice    ItemKind = "voice"
	KindAudio    ItemKind = "audio"
	KindDocument ItemKind = "document"
)

// IsMedia reports whether the kind carries a binary payload.
func (k ItemKind) IsMedia() bool {
	return k != KindText && k != ""
}

// Ext returns the filename extension used for generated media names.
// Documents keep whatever name the sender declared, so they get none.
func (k ItemKind) Ext() string {
	switch k {
	case KindPhoto:
		return "jpg"
	case KindVideo:
		return "mp4"
	case KindVoice:
		return "ogg"
	case KindAudio:
		return "mp3"
	default:
		return ""
	}
}

// InboundItem is one unit of content to archive. It is ephemeral: it exists
// only for the duration of one pipeline run and is never persisted.
type InboundItem struct {
	// ID is a pipeline-internal identifier used for log correlation.
	// Assigned by the dispatcher when empty.
	ID string

	// SenderID identifies the sending user on the transport.
	SenderID int64

	// SenderName is the sender's display name, used to annotate text notes.
	SenderName string

	Kind ItemKind

	// Content streams the raw payload for media kinds. The dispatcher hands
	// it to the storage client without materialising it to disk.
	Content io.Reader

	// Size is the declared payload size in bytes.
	Size int64

	// MIMEType is the declared content type. Empty means unknown.
	MIMEType string

	// Filename is the sender-declared file name, when the transport
	// provides one. Empty triggers a generated name.
	Filename string

	// GroupID is the transport-supplied correlation id shared by items of
	// one multi-item send. Empty for standalone items.
	GroupID string

	// Text holds the message text for KindText, or the caption for media.
	Text string

	SentAt time.Time
}
