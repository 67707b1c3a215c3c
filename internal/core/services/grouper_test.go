package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

func newGrouper(store *memory.Store) *Grouper {
	g := NewGrouper(store, time.Minute, zerolog.Nop())
	g.now = func() time.Time {
		return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	}
	return g
}

func TestGrouper_ResolveCreatesOnce(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := newGrouper(store)
	ctx := context.Background()

	first, err := g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)

	second, err := g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	folders := store.Folders()
	require.Len(t, folders, 1)
	assert.Equal(t, "parent", folders[0].ParentID)
	assert.Equal(t, "Album_20240101_100000", folders[0].Name)
}

func TestGrouper_ConcurrentMembersShareOneFolder(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := newGrouper(store)
	ctx := context.Background()

	const members = 16
	ids := make([]string, members)

	var wg sync.WaitGroup
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := g.Resolve(ctx, "parent", "album-1")
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	require.Len(t, store.Folders(), 1)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestGrouper_DistinctGroupsGetDistinctFolders(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := newGrouper(store)
	ctx := context.Background()

	a, err := g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)
	b, err := g.Resolve(ctx, "parent", "album-2")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, store.Folders(), 2)
}

func TestGrouper_CreationErrorNotCached(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := newGrouper(store)
	ctx := context.Background()

	store.FailCreates(errors.New("quota"))
	_, err := g.Resolve(ctx, "parent", "album-1")
	require.Error(t, err)

	// A later member of the same group retries and succeeds
	store.FailCreates(nil)
	id, err := g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestGrouper_SweepEvictsIdleBatches(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := newGrouper(store)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return start }

	_, err := g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)

	// Idle short of the window survives the sweep
	g.sweep(start.Add(30 * time.Second))
	_, err = g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)
	assert.Len(t, store.Folders(), 1)

	// Idle past the window is evicted; the next member starts a new batch
	g.sweep(start.Add(2 * time.Minute))
	_, err = g.Resolve(ctx, "parent", "album-1")
	require.NoError(t, err)
	assert.Len(t, store.Folders(), 2)
}

func TestGrouper_StartStop(t *testing.T) {
	store := memory.NewStore(domain.UploadPolicy{})
	g := NewGrouper(store, time.Minute, zerolog.Nop())

	g.Start()
	g.Start() // idempotent
	g.Stop()
	g.Stop() // idempotent
}
