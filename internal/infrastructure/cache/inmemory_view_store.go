package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryViewStore implements ViewStore using in-memory maps. State is local
// to the process, so it suits single-instance deployments and testing.
type InMemoryViewStore struct {
	mu      sync.RWMutex
	counts  map[string]map[uuid.UUID]int64
	recents map[string][]uuid.UUID
}

// NewInMemoryViewStore creates a new in-memory view store
func NewInMemoryViewStore() *InMemoryViewStore {
	return &InMemoryViewStore{
		counts:  make(map[string]map[uuid.UUID]int64),
		recents: make(map[string][]uuid.UUID),
	}
}

// RecordView bumps the trending score and updates the recently-viewed list
func (s *InMemoryViewStore) RecordView(ctx context.Context, tenantID, userID string, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenantCounts, ok := s.counts[tenantID]
	if !ok {
		tenantCounts = make(map[uuid.UUID]int64)
		s.counts[tenantID] = tenantCounts
	}
	tenantCounts[productID]++

	key := recentMapKey(tenantID, userID)
	recent := s.recents[key]

	// Move the product to the front, dropping any earlier occurrence
	deduped := make([]uuid.UUID, 0, len(recent)+1)
	deduped = append(deduped, productID)
	for _, id := range recent {
		if id != productID {
			deduped = append(deduped, id)
		}
	}
	if len(deduped) > maxRecentViews {
		deduped = deduped[:maxRecentViews]
	}
	s.recents[key] = deduped

	return nil
}

// Trending returns the tenant's most viewed products, highest first
func (s *InMemoryViewStore) Trending(ctx context.Context, tenantID string, limit int) ([]ProductScore, error) {
	if limit <= 0 {
		return []ProductScore{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantCounts := s.counts[tenantID]
	scores := make([]ProductScore, 0, len(tenantCounts))
	for id, views := range tenantCounts {
		scores = append(scores, ProductScore{ProductID: id, Views: views})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Views != scores[j].Views {
			return scores[i].Views > scores[j].Views
		}
		return scores[i].ProductID.String() < scores[j].ProductID.String()
	})

	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// RecentlyViewed returns the user's last viewed products, newest first
func (s *InMemoryViewStore) RecentlyViewed(ctx context.Context, tenantID, userID string, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := s.recents[recentMapKey(tenantID, userID)]
	if len(recent) > limit {
		recent = recent[:limit]
	}

	ids := make([]uuid.UUID, len(recent))
	copy(ids, recent)
	return ids, nil
}

// Ping always succeeds for the in-memory store
func (s *InMemoryViewStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases resources. The in-memory store has none.
func (s *InMemoryViewStore) Close() error {
	return nil
}

// Size returns the number of tracked products for a tenant (for testing)
func (s *InMemoryViewStore) Size(tenantID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counts[tenantID])
}

// recentMapKey joins tenant and user into a map key. The null byte cannot
// appear in either part.
func recentMapKey(tenantID, userID string) string {
	return tenantID + "\x00" + userID
}

// Ensure InMemoryViewStore implements ViewStore
var _ ViewStore = (*InMemoryViewStore)(nil)
