package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItemKind_IsMedia(t *testing.T) {
	assert.False(t, KindText.IsMedia())
	assert.False(t, ItemKind("").IsMedia())
	for _, k := range []ItemKind{KindPhoto, KindVideo, KindVoice, KindAudio, KindDocument} {
		assert.True(t, k.IsMedia(), string(k))
	}
}

func TestItemKind_Ext(t *testing.T) {
	assert.Equal(t, "jpg", KindPhoto.Ext())
	assert.Equal(t, "mp4", KindVideo.Ext())
	assert.Equal(t, "ogg", KindVoice.Ext())
	assert.Equal(t, "mp3", KindAudio.Ext())
	// Documents keep the sender-declared name
	assert.Empty(t, KindDocument.Ext())
}

func TestBatchFolderName(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, "Album_20240315_093045", BatchFolderName(ts))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "processing", StatusProcessing.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failure", StatusFailure.String())

	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailure.Terminal())
}

func TestUploadResultConstructors(t *testing.T) {
	ok := Success("folder-1", "file-1")
	assert.Equal(t, StatusSuccess, ok.Status)
	assert.Equal(t, "folder-1", ok.FolderID)
	assert.Equal(t, "file-1", ok.FileID)

	fail := Failure(ErrFileTooLarge)
	assert.Equal(t, StatusFailure, fail.Status)
	assert.Equal(t, ReasonTooLarge, fail.Reason)
	assert.ErrorIs(t, fail.Err, ErrFileTooLarge)
}
