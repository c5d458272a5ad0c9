package cache

import (
	"fmt"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ViewStoreFactory creates view stores based on configuration
type ViewStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ViewStoreFactoryOption is a functional option for configuring the factory
type ViewStoreFactoryOption func(*ViewStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ViewStoreFactoryOption {
	return func(f *ViewStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ViewStoreFactoryOption {
	return func(f *ViewStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewViewStoreFactory creates a new factory
func NewViewStoreFactory(cfg config.RedisConfig, opts ...ViewStoreFactoryOption) *ViewStoreFactory {
	f := &ViewStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based view store
func (f *ViewStoreFactory) CreateRedisStore() (ViewStore, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	store, err := NewRedisViewStore(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis view store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates an in-memory view store.
// WARNING: in-memory stores do not share state across process instances, so
// trending and recently-viewed results diverge in distributed deployments.
func (f *ViewStoreFactory) CreateInMemoryStore() ViewStore {
	return NewInMemoryViewStore()
}

// CreateStore creates a view store based on configuration. When Redis is
// disabled it returns the in-memory store directly; when Redis is enabled but
// unreachable it falls back to in-memory if AllowInMemoryFallback is true.
func (f *ViewStoreFactory) CreateStore() (ViewStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory view store")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis view store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for view tracking but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory view store. "+
		"Trending and recently-viewed results will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
