package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisViewStore implements ViewStore using Redis. Trending counters live in
// a per-tenant sorted set and recently-viewed lists in per-user lists, so
// state is shared across instances.
type RedisViewStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisViewStore creates a new Redis-based view store
func NewRedisViewStore(cfg RedisConfig) (*RedisViewStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisViewStore{
		client:    client,
		keyPrefix: "views:",
	}, nil
}

// NewRedisViewStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisViewStoreWithClient(client *redis.Client, keyPrefix string) *RedisViewStore {
	if keyPrefix == "" {
		keyPrefix = "views:"
	}
	return &RedisViewStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// RecordView bumps the trending score and updates the recently-viewed list
// in a single transaction
func (s *RedisViewStore) RecordView(ctx context.Context, tenantID, userID string, productID uuid.UUID) error {
	member := productID.String()
	recentKey := s.recentKey(tenantID, userID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, s.trendingKey(tenantID), 1, member)
		pipe.LRem(ctx, recentKey, 0, member)
		pipe.LPush(ctx, recentKey, member)
		pipe.LTrim(ctx, recentKey, 0, maxRecentViews-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// Trending returns the tenant's most viewed products, highest first
func (s *RedisViewStore) Trending(ctx context.Context, tenantID string, limit int) ([]ProductScore, error) {
	if limit <= 0 {
		return []ProductScore{}, nil
	}

	members, err := s.client.ZRevRangeWithScores(ctx, s.trendingKey(tenantID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trending products: %w", err)
	}

	scores := make([]ProductScore, 0, len(members))
	for _, member := range members {
		raw, ok := member.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		scores = append(scores, ProductScore{ProductID: id, Views: int64(member.Score)})
	}
	return scores, nil
}

// RecentlyViewed returns the user's last viewed products, newest first
func (s *RedisViewStore) RecentlyViewed(ctx context.Context, tenantID, userID string, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	members, err := s.client.LRange(ctx, s.recentKey(tenantID, userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recently viewed products: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Ping checks the Redis connection
func (s *RedisViewStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisViewStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisViewStore) GetClient() *redis.Client {
	return s.client
}

func (s *RedisViewStore) trendingKey(tenantID string) string {
	return s.keyPrefix + "trending:" + tenantID
}

func (s *RedisViewStore) recentKey(tenantID, userID string) string {
	return s.keyPrefix + "recent:" + tenantID + ":" + userID
}

// Ensure RedisViewStore implements ViewStore
var _ ViewStore = (*RedisViewStore)(nil)
