package driving

import (
	"context"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// StatusNotifier receives the user-visible pipeline states for one item.
// Notify is called at most once with StatusProcessing and exactly once with
// a terminal state. Implementations must be safe to call from the item's
// pipeline goroutine.
type StatusNotifier interface {
	Notify(status domain.Status)
}

// StatusFunc adapts a function to the StatusNotifier interface.
// A nil StatusFunc discards notifications.
type StatusFunc func(domain.Status)

// Notify implements StatusNotifier.
func (f StatusFunc) Notify(status domain.Status) {
	if f != nil {
		f(status)
	}
}

// Archiver runs the archival pipeline for inbound items. Each call is
// independent: items are processed concurrently, failures never propagate
// across items, and every call produces exactly one terminal result.
type Archiver interface {
	// Archive resolves the destination for item, uploads its content and
	// returns the terminal outcome. Status states are additionally pushed
	// through notify as they are reached; notify may be nil.
	Archive(ctx context.Context, item *domain.InboundItem, notify StatusNotifier) domain.UploadResult
}
