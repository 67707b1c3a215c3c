package driving

import (
	"context"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// TopicService exposes the topic catalog and per-user topic selection.
type TopicService interface {
	// All returns every catalogued topic in catalog order.
	All() []domain.Topic

	// Current returns the user's selected topic. ok is false when the user
	// never selected one, or their stored selection no longer exists in the
	// catalog; callers then fall back to the default destination folder.
	Current(ctx context.Context, userID int64) (topic domain.Topic, ok bool)

	// Select validates name against the catalog and durably records it as
	// the user's current topic. Returns domain.ErrTopicNotFound for unknown
	// names, leaving the previous selection unchanged.
	Select(ctx context.Context, userID int64, name string) (domain.Topic, error)

	// Clear removes the user's selection; subsequent items resolve to the
	// default destination folder.
	Clear(ctx context.Context, userID int64) error
}
