package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/recommendation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFeedback creates and saves a feedback entry
func seedFeedback(t *testing.T, repo *GormFeedbackRepository, tenantID, userID string, productID uuid.UUID, rating int) *recommendation.FeedbackEntry {
	t.Helper()

	entry, err := recommendation.NewFeedbackEntry(tenantID, userID, productID, rating, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), entry))
	return entry
}

func TestGormFeedbackRepository_Create(t *testing.T) {
	t.Run("persists a feedback entry", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))
		productID := uuid.New()

		entry, err := recommendation.NewFeedbackEntry("acme", "user-1", productID, 4, "good match")
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), entry))

		entries, err := repo.FindByProduct(context.Background(), "acme", productID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 4, entries[0].Rating)
		assert.Equal(t, "good match", entries[0].Comment)
	})
}

func TestGormFeedbackRepository_FindByProduct(t *testing.T) {
	t.Run("returns entries most recent first up to the limit", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))
		productID := uuid.New()
		now := time.Now()

		older, err := recommendation.NewFeedbackEntry("acme", "user-1", productID, 3, "")
		require.NoError(t, err)
		older.CreatedAt = now.Add(-time.Hour)
		require.NoError(t, repo.Create(context.Background(), older))

		newer, err := recommendation.NewFeedbackEntry("acme", "user-2", productID, 5, "")
		require.NoError(t, err)
		newer.CreatedAt = now
		require.NoError(t, repo.Create(context.Background(), newer))

		entries, err := repo.FindByProduct(context.Background(), "acme", productID, 1)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 5, entries[0].Rating)
	})

	t.Run("filters by product and tenant", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))
		productID := uuid.New()
		seedFeedback(t, repo, "acme", "user-1", productID, 4)
		seedFeedback(t, repo, "acme", "user-1", uuid.New(), 2)
		seedFeedback(t, repo, "globex", "user-1", productID, 1)

		entries, err := repo.FindByProduct(context.Background(), "acme", productID, 10)

		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestGormFeedbackRepository_AverageRating(t *testing.T) {
	t.Run("returns the mean rating of the product", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))
		productID := uuid.New()
		seedFeedback(t, repo, "acme", "user-1", productID, 4)
		seedFeedback(t, repo, "acme", "user-2", productID, 5)

		avg, err := repo.AverageRating(context.Background(), "acme", productID)

		require.NoError(t, err)
		assert.InDelta(t, 4.5, avg, 0.0001)
	})

	t.Run("returns zero for a product without feedback", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))

		avg, err := repo.AverageRating(context.Background(), "acme", uuid.New())

		require.NoError(t, err)
		assert.Zero(t, avg)
	})

	t.Run("ignores other tenants' ratings", func(t *testing.T) {
		repo := NewGormFeedbackRepository(newTestDB(t))
		productID := uuid.New()
		seedFeedback(t, repo, "acme", "user-1", productID, 4)
		seedFeedback(t, repo, "globex", "user-1", productID, 1)

		avg, err := repo.AverageRating(context.Background(), "acme", productID)

		require.NoError(t, err)
		assert.InDelta(t, 4.0, avg, 0.0001)
	})
}
