package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driving"
)

// Ensure UserTopics implements the interface.
var _ driving.TopicService = (*UserTopics)(nil)

// UserTopics tracks each user's current topic over a durable store.
// Selections are validated against the directory before the write-through,
// so the store never holds a name that was unknown at selection time.
// Stale names (topic removed from the catalogue between restarts) are
// tolerated at read time and fall back to the default destination.
type UserTopics struct {
	dir   *Directory
	store driven.UserStateStore
	log   zerolog.Logger
}

// NewUserTopics creates the user topic service.
func NewUserTopics(dir *Directory, store driven.UserStateStore, log zerolog.Logger) *UserTopics {
	return &UserTopics{
		dir:   dir,
		store: store,
		log:   log.With().Str("component", "usertopics").Logger(),
	}
}

// All returns every catalogued topic.
func (u *UserTopics) All() []domain.Topic {
	return u.dir.All()
}

// Current returns the user's selected topic. It never fails: store errors
// and stale selections both degrade to "no topic", which callers resolve to
// the default destination folder.
func (u *UserTopics) Current(ctx context.Context, userID int64) (domain.Topic, bool) {
	name, err := u.store.Get(ctx, userID)
	if err != nil {
		u.log.Warn().Err(err).Int64("user", userID).Msg("reading topic state, using default destination")
		return domain.Topic{}, false
	}
	if name == "" {
		return domain.Topic{}, false
	}

	topic, err := u.dir.Resolve(name)
	if err != nil {
		if errors.Is(err, domain.ErrTopicNotFound) {
			u.log.Warn().Str("topic", name).Int64("user", userID).Msg("stored topic no longer in catalogue")
		}
		return domain.Topic{}, false
	}
	return topic, true
}

// Select validates name and durably records it for the user. The write
// commits before Select returns; an unknown name leaves the previous
// selection untouched.
func (u *UserTopics) Select(ctx context.Context, userID int64, name string) (domain.Topic, error) {
	topic, err := u.dir.Resolve(name)
	if err != nil {
		return domain.Topic{}, err
	}

	if err := u.store.Set(ctx, userID, topic.Name); err != nil {
		return domain.Topic{}, err
	}

	u.log.Info().Int64("user", userID).Str("topic", topic.Name).Msg("topic selected")
	return topic, nil
}

// Clear removes the user's selection.
func (u *UserTopics) Clear(ctx context.Context, userID int64) error {
	if err := u.store.Clear(ctx, userID); err != nil {
		return err
	}
	u.log.Info().Int64("user", userID).Msg("topic cleared")
	return nil
}
