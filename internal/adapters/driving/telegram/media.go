package telegram

import (
	"errors"

	tele "gopkg.in/telebot.v3"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// errNoAttachment is raised when a media endpoint fires for a message
// without a payload this transport understands.
var errNoAttachment = errors.New("message carries no supported attachment")

// attachment is the transport-level view of a message payload.
type attachment struct {
	kind     domain.ItemKind
	file     *tele.File
	filename string
	mime     string
}

// extractAttachment maps a message's payload onto an attachment. Photos
// arrive without a name or declared type, so they get image/jpeg and a
// generated name downstream. Voice notes default to audio/ogg.
func extractAttachment(m *tele.Message) (attachment, error) {
	switch {
	case m.Photo != nil:
		return attachment{
			kind: domain.KindPhoto,
			file: &m.Photo.File,
			mime: "image/jpeg",
		}, nil

	case m.Video != nil:
		return attachment{
			kind:     domain.KindVideo,
			file:     &m.Video.File,
			filename: m.Video.FileName,
			mime:     m.Video.MIME,
		}, nil

	case m.Voice != nil:
		mime := m.Voice.MIME
		if mime == "" {
			mime = "audio/ogg"
		}
		return attachment{
			kind: domain.KindVoice,
			file: &m.Voice.File,
			mime: mime,
		}, nil

	case m.Audio != nil:
		return attachment{
			kind:     domain.KindAudio,
			file:     &m.Audio.File,
			filename: m.Audio.FileName,
			mime:     m.Audio.MIME,
		}, nil

	case m.Document != nil:
		return attachment{
			kind:     domain.KindDocument,
			file:     &m.Document.File,
			filename: m.Document.FileName,
			mime:     m.Document.MIME,
		}, nil
	}

	return attachment{}, errNoAttachment
}
