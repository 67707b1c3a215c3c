// Package memory provides an in-memory ArchiveStore for testing.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArchiveStore = (*Store)(nil)

// Folder records a folder created in the store.
type Folder struct {
	ID       string
	ParentID string
	Name     string
}

// Upload records a stored file.
type Upload struct {
	FolderID string
	Filename string
	Content  []byte
	MIMEType string
}

// Note records a stored text note.
type Note struct {
	FolderID string
	BaseName string
	Content  string
}

// Store is an in-memory implementation of driven.ArchiveStore for testing.
// Failures can be scripted per operation.
type Store struct {
	mu     sync.Mutex
	policy domain.UploadPolicy

	folders []Folder
	uploads []Upload
	notes   []Note

	seq int

	createErr   error
	failUploads int
	uploadErr   error
}

// NewStore creates an in-memory archive store with the given policy.
func NewStore(policy domain.UploadPolicy) *Store {
	return &Store{policy: policy}
}

// CheckPolicy implements driven.ArchiveStore.
func (s *Store) CheckPolicy(size int64, mimeType string) error {
	return s.policy.Check(size, mimeType)
}

// CreateFolder implements driven.ArchiveStore.
func (s *Store) CreateFolder(_ context.Context, parentID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return "", s.createErr
	}

	s.seq++
	id := fmt.Sprintf("folder-%d", s.seq)
	s.folders = append(s.folders, Folder{ID: id, ParentID: parentID, Name: name})
	return id, nil
}

// UploadFile implements driven.ArchiveStore.
func (s *Store) UploadFile(_ context.Context, folderID, filename string, r io.Reader, size int64, mimeType string) (string, error) {
	if err := s.policy.Check(size, mimeType); err != nil {
		return "", err
	}

	var content []byte
	if r != nil {
		var err error
		content, err = io.ReadAll(r)
		if err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUploads > 0 {
		s.failUploads--
		return "", s.uploadErr
	}

	s.seq++
	id := fmt.Sprintf("file-%d", s.seq)
	s.uploads = append(s.uploads, Upload{FolderID: folderID, Filename: filename, Content: content, MIMEType: mimeType})
	return id, nil
}

// UploadNote implements driven.ArchiveStore.
func (s *Store) UploadNote(_ context.Context, folderID, baseName, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUploads > 0 {
		s.failUploads--
		return "", s.uploadErr
	}

	s.seq++
	id := fmt.Sprintf("note-%d", s.seq)
	s.notes = append(s.notes, Note{FolderID: folderID, BaseName: baseName, Content: content})
	return id, nil
}

// FailCreates makes subsequent CreateFolder calls return err (nil resets).
func (s *Store) FailCreates(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErr = err
}

// FailUploads makes the next n uploads (files and notes) return err.
func (s *Store) FailUploads(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads = n
	s.uploadErr = err
}

// Folders returns a snapshot of created folders.
func (s *Store) Folders() []Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// Uploads returns a snapshot of stored files.
func (s *Store) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Notes returns a snapshot of stored notes.
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}
