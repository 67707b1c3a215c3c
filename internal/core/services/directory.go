package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// Directory is the immutable topic catalog, built once at startup.
// The whole command surface derives from it (every topic name becomes a
// command alias), so a malformed catalog is a fatal startup error rather
// than anything runtime-recoverable.
type Directory struct {
	byName map[string]domain.Topic
	order  []domain.Topic
}

// NewDirectory validates the catalogue and builds the directory.
// Names are compared case-insensitively; the stored name is lowered so it
// can serve directly as a command alias.
func NewDirectory(topics []domain.Topic) (*Directory, error) {
	d := &Directory{
		byName: make(map[string]domain.Topic, len(topics)),
		order:  make([]domain.Topic, 0, len(topics)),
	}

	for i, t := range topics {
		t.Name = strings.ToLower(strings.TrimSpace(t.Name))
		if t.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", domain.ErrInvalidCatalog, i)
		}
		if t.FolderID == "" {
			return nil, fmt.Errorf("%w: topic %q has no folder id", domain.ErrInvalidCatalog, t.Name)
		}
		if _, exists := d.byName[t.Name]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateTopic, t.Name)
		}
		if t.Hashtag == "" {
			t.Hashtag = "#" + t.Name
		}

		d.byName[t.Name] = t
		d.order = append(d.order, t)
	}

	return d, nil
}

// Resolve returns the topic for name, or domain.ErrTopicNotFound.
func (d *Directory) Resolve(name string) (domain.Topic, error) {
	t, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.Topic{}, fmt.Errorf("%w: %q", domain.ErrTopicNotFound, name)
	}
	return t, nil
}

// All returns the topics in catalogue order.
func (d *Directory) All() []domain.Topic {
	out := make([]domain.Topic, len(d.order))
	copy(out, d.order)
	return out
}
