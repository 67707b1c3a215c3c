package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
)

// DefaultBatchWindow is the debounce window applied when none is
// configured. The window only bounds registry memory (members upload
// independently once the subfolder exists), so it is generous enough to
// cover slow multi-file sends on poor links.
const DefaultBatchWindow = 90 * time.Second

// Grouper correlates the items of one multi-item send into a single
// destination subfolder. A registry keyed by correlation id tracks live
// batches; folder creation for a new id is funnelled through singleflight
// so concurrent first members trigger exactly one CreateFolder call and
// share its result. A background sweep evicts batches idle past the
// debounce window to bound registry growth.
type Grouper struct {
	store  driven.ArchiveStore
	window time.Duration
	now    func() time.Time
	log    zerolog.Logger

	flight singleflight.Group

	mu      sync.Mutex
	batches map[string]*domain.Batch

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewGrouper creates a batch grouper over the given store.
// A non-positive window falls back to DefaultBatchWindow.
func NewGrouper(store driven.ArchiveStore, window time.Duration, log zerolog.Logger) *Grouper {
	if window <= 0 {
		window = DefaultBatchWindow
	}
	return &Grouper{
		store:   store,
		window:  window,
		now:     time.Now,
		log:     log.With().Str("component", "grouper").Logger(),
		batches: make(map[string]*domain.Batch),
	}
}

// Resolve returns the subfolder id for groupID, creating the subfolder
// under parentID on the first call for that id. The subfolder is named
// from the arrival time of the first member. Creation errors are not
// cached: a later member of the same group retries the creation.
func (g *Grouper) Resolve(ctx context.Context, parentID, groupID string) (string, error) {
	if id, ok := g.touch(groupID); ok {
		return id, nil
	}

	v, err, _ := g.flight.Do(groupID, func() (any, error) {
		// A concurrent member may have finished creating the batch between
		// the registry miss and entering the flight.
		if id, ok := g.touch(groupID); ok {
			return id, nil
		}

		createdAt := g.now()
		name := domain.BatchFolderName(createdAt)
		folderID, err := g.store.CreateFolder(ctx, parentID, name)
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		g.batches[groupID] = &domain.Batch{
			GroupID:   groupID,
			FolderID:  folderID,
			CreatedAt: createdAt,
			LastSeen:  createdAt,
		}
		g.mu.Unlock()

		g.log.Debug().Str("group", groupID).Str("folder", folderID).Str("name", name).Msg("batch subfolder created")
		return folderID, nil
	})
	if err != nil {
		return "", err
	}

	g.touch(groupID)
	return v.(string), nil
}

// touch refreshes a live batch and returns its folder id.
func (g *Grouper) touch(groupID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.batches[groupID]
	if !ok {
		return "", false
	}
	b.LastSeen = g.now()
	b.Members++
	return b.FolderID, true
}

// Start launches the background sweep. Safe to call once; Stop reverses it.
func (g *Grouper) Start() {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.stopCh = make(chan struct{})
	g.mu.Unlock()

	g.wg.Add(1)
	go g.run()
}

// Stop halts the sweep and waits for it to exit.
func (g *Grouper) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.stopCh)
	g.mu.Unlock()

	g.wg.Wait()
}

// run is the sweep loop.
func (g *Grouper) run() {
	defer g.wg.Done()

	interval := g.window / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopCh:
			return
		case <-ticker.C:
			g.sweep(g.now())
		}
	}
}

// sweep evicts batches idle past the debounce window.
func (g *Grouper) sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, b := range g.batches {
		if now.Sub(b.LastSeen) > g.window {
			g.log.Debug().Str("group", id).Int("members", b.Members).Msg("batch evicted")
			delete(g.batches, id)
		}
	}
}
