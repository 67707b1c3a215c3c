package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driving"
)

// Ensure Archiver implements the interface.
var _ driving.Archiver = (*Archiver)(nil)

// DefaultCallTimeout bounds each storage interaction per item. Exceeding it
// surfaces as a transient failure on that item; items carry no other
// cancellation.
const DefaultCallTimeout = 2 * time.Minute

// ArchiverConfig configures the dispatcher.
type ArchiverConfig struct {
	// DefaultFolderID receives items from users with no topic selected.
	DefaultFolderID string

	// CallTimeout bounds the storage work for one item. Non-positive
	// falls back to DefaultCallTimeout.
	CallTimeout time.Duration
}

// Archiver is the pipeline dispatcher. For each inbound item it resolves
// the destination folder, shapes the content, invokes the storage client
// and reports the outcome. Items are independent: a failure terminates only
// that item's run and batches carry no atomicity guarantee.
type Archiver struct {
	topics  driving.TopicService
	grouper *Grouper
	store   driven.ArchiveStore
	cfg     ArchiverConfig
	now     func() time.Time
	log     zerolog.Logger
}

// NewArchiver creates the dispatcher.
func NewArchiver(
	topics driving.TopicService,
	grouper *Grouper,
	store driven.ArchiveStore,
	cfg ArchiverConfig,
	log zerolog.Logger,
) *Archiver {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	return &Archiver{
		topics:  topics,
		grouper: grouper,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
		log:     log.With().Str("component", "archiver").Logger(),
	}
}

// Archive runs the per-item state machine: policy pre-check, processing
// marker, destination resolution, content shaping, upload, terminal
// outcome. Policy violations skip the processing marker and go straight to
// failure without touching the storage service.
func (a *Archiver) Archive(ctx context.Context, item *domain.InboundItem, notify driving.StatusNotifier) domain.UploadResult {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	log := a.log.With().
		Str("item", item.ID).
		Str("kind", string(item.Kind)).
		Int64("sender", item.SenderID).
		Logger()

	if item.Kind.IsMedia() {
		if err := a.store.CheckPolicy(item.Size, item.MIMEType); err != nil {
			log.Warn().Err(err).Int64("size", item.Size).Str("mime", item.MIMEType).Msg("item rejected by policy")
			return a.fail(notify, err)
		}
	}

	a.notify(notify, domain.StatusProcessing)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	folderID, hashtag, err := a.resolveDestination(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("destination resolution failed")
		return a.fail(notify, err)
	}

	var fileID string
	if item.Kind == domain.KindText {
		base := "Note_" + a.now().Format("20060102_150405")
		fileID, err = a.store.UploadNote(ctx, folderID, base, shapeNote(hashtag, item.SenderName, item.Text))
	} else {
		name := item.Filename
		if name == "" {
			name = generatedFilename(item.Kind, a.now())
		}
		fileID, err = a.store.UploadFile(ctx, folderID, name, item.Content, item.Size, item.MIMEType)
	}
	if err != nil {
		log.Error().Err(err).Str("folder", folderID).Msg("upload failed")
		return a.fail(notify, err)
	}

	log.Info().Str("folder", folderID).Str("file", fileID).Msg("item archived")
	a.notify(notify, domain.StatusSuccess)
	return domain.Success(folderID, fileID)
}

// resolveDestination picks the folder for the item: the user's current
// topic folder (default folder when none is selected), nested under a
// batch subfolder when the item belongs to a multi-item send.
func (a *Archiver) resolveDestination(ctx context.Context, item *domain.InboundItem) (folderID, hashtag string, err error) {
	folderID = a.cfg.DefaultFolderID
	if topic, ok := a.topics.Current(ctx, item.SenderID); ok {
		folderID = topic.FolderID
		hashtag = topic.Hashtag
	}

	if item.GroupID != "" {
		folderID, err = a.grouper.Resolve(ctx, folderID, item.GroupID)
		if err != nil {
			return "", "", fmt.Errorf("resolve batch subfolder: %w", err)
		}
	}
	return folderID, hashtag, nil
}

func (a *Archiver) fail(notify driving.StatusNotifier, err error) domain.UploadResult {
	a.notify(notify, domain.StatusFailure)
	return domain.Failure(err)
}

func (a *Archiver) notify(notify driving.StatusNotifier, s domain.Status) {
	if notify != nil {
		notify.Notify(s)
	}
}

// shapeNote renders a text item as the archived note body: hashtag line
// when a topic is selected, the sender handle, a blank line, the text.
func shapeNote(hashtag, senderName string, text string) string {
	var b strings.Builder
	if hashtag != "" {
		b.WriteString(hashtag)
		b.WriteByte('\n')
	}
	if senderName == "" {
		senderName = "unknown"
	}
	b.WriteString("@" + senderName + "\n\n")
	b.WriteString(text)
	return b.String()
}

// generatedFilename names media that arrived without a declared file name.
func generatedFilename(kind domain.ItemKind, t time.Time) string {
	name := string(kind) + "_" + t.Format("20060102_150405")
	if ext := kind.Ext(); ext != "" {
		name += "." + ext
	}
	return name
}
