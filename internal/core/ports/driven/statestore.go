package driven

import "context"

// UserStateStore persists each user's current topic selection.
// Backed by SQLite for durability; writes commit before returning so a
// crash immediately after a confirmed selection cannot lose it.
type UserStateStore interface {
	// Get returns the stored topic name for a user, or "" when none is set.
	Get(ctx context.Context, userID int64) (string, error)

	// Set durably records a user's topic selection.
	Set(ctx context.Context, userID int64, topic string) error

	// Clear removes a user's topic selection.
	Clear(ctx context.Context, userID int64) error

	// Close releases the underlying store.
	Close() error
}
