package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryViewStore_RecordView(t *testing.T) {
	store := NewInMemoryViewStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("accumulates trending scores per product", func(t *testing.T) {
		productID := uuid.New()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", productID))
		require.NoError(t, store.RecordView(ctx, "acme", "user-2", productID))

		scores, err := store.Trending(ctx, "acme", 10)
		require.NoError(t, err)
		require.NotEmpty(t, scores)
		assert.Equal(t, productID, scores[0].ProductID)
		assert.Equal(t, int64(2), scores[0].Views)
	})

	t.Run("keeps tenants isolated", func(t *testing.T) {
		store := NewInMemoryViewStore()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))

		scores, err := store.Trending(ctx, "globex", 10)
		require.NoError(t, err)
		assert.Empty(t, scores)
	})
}

func TestInMemoryViewStore_Trending(t *testing.T) {
	ctx := context.Background()

	t.Run("orders products by views highest first", func(t *testing.T) {
		store := NewInMemoryViewStore()
		hot := uuid.New()
		warm := uuid.New()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", warm))
		for i := 0; i < 3; i++ {
			require.NoError(t, store.RecordView(ctx, "acme", "user-1", hot))
		}

		scores, err := store.Trending(ctx, "acme", 10)

		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, hot, scores[0].ProductID)
		assert.Equal(t, int64(3), scores[0].Views)
		assert.Equal(t, warm, scores[1].ProductID)
	})

	t.Run("respects the limit", func(t *testing.T) {
		store := NewInMemoryViewStore()
		for i := 0; i < 5; i++ {
			require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))
		}

		scores, err := store.Trending(ctx, "acme", 2)

		require.NoError(t, err)
		assert.Len(t, scores, 2)
	})

	t.Run("returns empty for non-positive limit", func(t *testing.T) {
		store := NewInMemoryViewStore()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))

		scores, err := store.Trending(ctx, "acme", 0)

		require.NoError(t, err)
		assert.Empty(t, scores)
	})
}

func TestInMemoryViewStore_RecentlyViewed(t *testing.T) {
	ctx := context.Background()

	t.Run("returns newest first", func(t *testing.T) {
		store := NewInMemoryViewStore()
		first := uuid.New()
		second := uuid.New()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", first))
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", second))

		ids, err := store.RecentlyViewed(ctx, "acme", "user-1", 10)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{second, first}, ids)
	})

	t.Run("moves repeated views to the front without duplicates", func(t *testing.T) {
		store := NewInMemoryViewStore()
		first := uuid.New()
		second := uuid.New()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", first))
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", second))
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", first))

		ids, err := store.RecentlyViewed(ctx, "acme", "user-1", 10)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, ids)
	})

	t.Run("respects the limit", func(t *testing.T) {
		store := NewInMemoryViewStore()
		for i := 0; i < 5; i++ {
			require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))
		}

		ids, err := store.RecentlyViewed(ctx, "acme", "user-1", 3)

		require.NoError(t, err)
		assert.Len(t, ids, 3)
	})

	t.Run("keeps users isolated", func(t *testing.T) {
		store := NewInMemoryViewStore()
		require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))

		ids, err := store.RecentlyViewed(ctx, "acme", "user-2", 10)

		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("caps the list length", func(t *testing.T) {
		store := NewInMemoryViewStore()
		for i := 0; i < maxRecentViews+10; i++ {
			require.NoError(t, store.RecordView(ctx, "acme", "user-1", uuid.New()))
		}

		ids, err := store.RecentlyViewed(ctx, "acme", "user-1", maxRecentViews+10)

		require.NoError(t, err)
		assert.Len(t, ids, maxRecentViews)
	})
}

func TestInMemoryViewStore_Ping(t *testing.T) {
	t.Run("always succeeds", func(t *testing.T) {
		store := NewInMemoryViewStore()
		assert.NoError(t, store.Ping(context.Background()))
	})
}
