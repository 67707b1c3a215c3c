package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statememory "github.com/custodia-labs/tgarchive/internal/adapters/driven/state/memory"
	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driving"
)

// statusRecorder captures the sequence of pipeline states.
type statusRecorder struct {
	states []domain.Status
}

func (r *statusRecorder) Notify(s domain.Status) {
	r.states = append(r.states, s)
}

type archiverFixture struct {
	arch   *Archiver
	store  *memory.Store
	topics *UserTopics
}

func newArchiverFixture(t *testing.T, policy domain.UploadPolicy, topics ...domain.Topic) *archiverFixture {
	t.Helper()

	dir, err := NewDirectory(topics)
	require.NoError(t, err)

	store := memory.NewStore(policy)
	userTopics := NewUserTopics(dir, statememory.NewStore(), zerolog.Nop())
	grouper := NewGrouper(store, time.Minute, zerolog.Nop())

	arch := NewArchiver(userTopics, grouper, store, ArchiverConfig{
		DefaultFolderID: "default-folder",
	}, zerolog.Nop())

	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	arch.now = func() time.Time { return fixed }
	grouper.now = arch.now

	return &archiverFixture{arch: arch, store: store, topics: userTopics}
}

func TestArchive_TextNoteToTopicFolder(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{}, domain.Topic{Name: "work", FolderID: "work-folder"})
	ctx := context.Background()

	_, err := f.topics.Select(ctx, 42, "work")
	require.NoError(t, err)

	rec := &statusRecorder{}
	res := f.arch.Archive(ctx, &domain.InboundItem{
		SenderID:   42,
		SenderName: "Jane Doe",
		Kind:       domain.KindText,
		Text:       "remember the milk",
	}, rec)

	assert.Equal(t, domain.StatusSuccess, res.Status)
	assert.Equal(t, "work-folder", res.FolderID)
	assert.Equal(t, []domain.Status{domain.StatusProcessing, domain.StatusSuccess}, rec.states)

	notes := f.store.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Note_20240101_100000", notes[0].BaseName)
	assert.Equal(t, "#work\n@Jane Doe\n\nremember the milk", notes[0].Content)
}

func TestArchive_TextNoteWithoutTopicOmitsHashtag(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{}, domain.Topic{Name: "work", FolderID: "work-folder"})

	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindText,
		Text:     "hello",
	}, nil)

	assert.Equal(t, domain.StatusSuccess, res.Status)
	assert.Equal(t, "default-folder", res.FolderID)

	notes := f.store.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "@unknown\n\nhello", notes[0].Content)
}

func TestArchive_MediaUpload(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})

	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindDocument,
		Content:  strings.NewReader("pdf bytes"),
		Size:     9,
		MIMEType: "application/pdf",
		Filename: "report.pdf",
	}, nil)

	assert.Equal(t, domain.StatusSuccess, res.Status)

	uploads := f.store.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "report.pdf", uploads[0].Filename)
	assert.Equal(t, "default-folder", uploads[0].FolderID)
	assert.Equal(t, []byte("pdf bytes"), uploads[0].Content)
}

func TestArchive_GeneratesFilenameForUnnamedMedia(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})

	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindPhoto,
		Content:  strings.NewReader("jpeg"),
		Size:     4,
		MIMEType: "image/jpeg",
	}, nil)

	assert.Equal(t, domain.StatusSuccess, res.Status)

	uploads := f.store.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "photo_20240101_100000.jpg", uploads[0].Filename)
}

func TestArchive_PolicyViolationSkipsProcessing(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{MaxFileSize: 10})

	rec := &statusRecorder{}
	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindVideo,
		Size:     100,
		MIMEType: "video/mp4",
	}, rec)

	assert.Equal(t, domain.StatusFailure, res.Status)
	assert.Equal(t, domain.ReasonTooLarge, res.Reason)
	// No processing marker: the terminal failure is the only state
	assert.Equal(t, []domain.Status{domain.StatusFailure}, rec.states)
	// And the storage service is never touched
	assert.Empty(t, f.store.Uploads())
	assert.Empty(t, f.store.Folders())
}

func TestArchive_DisallowedMIME(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{AllowedMIMETypes: []string{"image/jpeg"}})

	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindDocument,
		Size:     4,
		MIMEType: "application/x-dosexec",
	}, nil)

	assert.Equal(t, domain.StatusFailure, res.Status)
	assert.Equal(t, domain.ReasonDisallowedType, res.Reason)
}

func TestArchive_GroupedItemsShareBatchFolder(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{}, domain.Topic{Name: "work", FolderID: "work-folder"})
	ctx := context.Background()

	_, err := f.topics.Select(ctx, 42, "work")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res := f.arch.Archive(ctx, &domain.InboundItem{
			SenderID: 42,
			Kind:     domain.KindPhoto,
			Content:  strings.NewReader("jpeg"),
			Size:     4,
			MIMEType: "image/jpeg",
			GroupID:  "album-9",
		}, nil)
		require.Equal(t, domain.StatusSuccess, res.Status)
	}

	folders := f.store.Folders()
	require.Len(t, folders, 1)
	assert.Equal(t, "work-folder", folders[0].ParentID)
	assert.Equal(t, "Album_20240101_100000", folders[0].Name)

	uploads := f.store.Uploads()
	require.Len(t, uploads, 3)
	for _, u := range uploads {
		assert.Equal(t, folders[0].ID, u.FolderID)
	}
}

func TestArchive_UngroupedItemsCreateNoSubfolders(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})

	for i := 0; i < 2; i++ {
		res := f.arch.Archive(context.Background(), &domain.InboundItem{
			SenderID: 7,
			Kind:     domain.KindPhoto,
			Content:  strings.NewReader("jpeg"),
			Size:     4,
			MIMEType: "image/jpeg",
		}, nil)
		require.Equal(t, domain.StatusSuccess, res.Status)
	}

	assert.Empty(t, f.store.Folders())
	assert.Len(t, f.store.Uploads(), 2)
}

func TestArchive_BatchFolderCreationFailureFailsItem(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})
	f.store.FailCreates(errors.New("quota"))

	rec := &statusRecorder{}
	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindPhoto,
		Content:  strings.NewReader("jpeg"),
		Size:     4,
		MIMEType: "image/jpeg",
		GroupID:  "album-9",
	}, rec)

	assert.Equal(t, domain.StatusFailure, res.Status)
	assert.Equal(t, []domain.Status{domain.StatusProcessing, domain.StatusFailure}, rec.states)
	assert.Empty(t, f.store.Uploads())
}

func TestArchive_UploadFailure(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})
	f.store.FailUploads(1, domain.ErrUploadExhausted)

	rec := &statusRecorder{}
	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7,
		Kind:     domain.KindDocument,
		Content:  strings.NewReader("x"),
		Size:     1,
		MIMEType: "application/pdf",
		Filename: "a.pdf",
	}, rec)

	assert.Equal(t, domain.StatusFailure, res.Status)
	assert.Equal(t, domain.ReasonTransientUpload, res.Reason)
	assert.Equal(t, []domain.Status{domain.StatusProcessing, domain.StatusFailure}, rec.states)
}

func TestArchive_FailureDoesNotAffectLaterItems(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})
	ctx := context.Background()
	f.store.FailUploads(1, domain.ErrUploadExhausted)

	first := f.arch.Archive(ctx, &domain.InboundItem{
		SenderID: 7, Kind: domain.KindText, Text: "a",
	}, nil)
	assert.Equal(t, domain.StatusFailure, first.Status)

	second := f.arch.Archive(ctx, &domain.InboundItem{
		SenderID: 7, Kind: domain.KindText, Text: "b",
	}, nil)
	assert.Equal(t, domain.StatusSuccess, second.Status)
}

func TestArchive_AssignsItemID(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})

	item := &domain.InboundItem{SenderID: 7, Kind: domain.KindText, Text: "x"}
	f.arch.Archive(context.Background(), item, nil)

	assert.NotEmpty(t, item.ID)
}

func TestArchive_NilNotifier(t *testing.T) {
	f := newArchiverFixture(t, domain.UploadPolicy{})

	res := f.arch.Archive(context.Background(), &domain.InboundItem{
		SenderID: 7, Kind: domain.KindText, Text: "x",
	}, driving.StatusNotifier(nil))

	assert.Equal(t, domain.StatusSuccess, res.Status)
}
