package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAPIClientRepository implements APIClientRepository using GORM
type GormAPIClientRepository struct {
	db *gorm.DB
}

// NewGormAPIClientRepository creates a new GormAPIClientRepository
func NewGormAPIClientRepository(db *gorm.DB) *GormAPIClientRepository {
	return &GormAPIClientRepository{db: db}
}

// FindByClientID finds a client by its public identifier within a tenant
func (r *GormAPIClientRepository) FindByClientID(ctx context.Context, tenantID, clientID string) (*identity.APIClient, error) {
	var client identity.APIClient
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds a tenant's clients matching the filter
func (r *GormAPIClientRepository) FindAll(ctx context.Context, tenantID string, filter shared.Filter) ([]identity.APIClient, int64, error) {
	scope := func() *gorm.DB {
		query := r.db.WithContext(ctx).
			Model(&identity.APIClient{}).
			Where("tenant_id = ?", tenantID)
		if filter.Search != "" {
			pattern := "%" + strings.ToLower(filter.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(client_id) LIKE ?", pattern, pattern)
		}
		return query
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []identity.APIClient
	if err := scope().
		Order(orderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// orderClause builds the ORDER BY expression for a filter, defaulting to
// newest first. Both field and direction go through the whitelist before
// they reach the SQL string.
func orderClause(filter shared.Filter) string {
	orderBy := ValidateSortField(filter.OrderBy, APIClientSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return orderBy + " " + orderDir
}

// Save creates or updates a client
func (r *GormAPIClientRepository) Save(ctx context.Context, client *identity.APIClient) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Ensure GormAPIClientRepository implements APIClientRepository
var _ identity.APIClientRepository = (*GormAPIClientRepository)(nil)
