package identity

import (
	"context"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
)

// APIClientRepository defines the interface for API client persistence
type APIClientRepository interface {
	// FindByClientID finds a client by its public identifier within a tenant
	FindByClientID(ctx context.Context, tenantID, clientID string) (*APIClient, error)

	// FindAll finds a tenant's clients matching the filter
	FindAll(ctx context.Context, tenantID string, filter shared.Filter) ([]APIClient, int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *APIClient) error
}
