package identity

import (
	"strings"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// APIClientStatus represents the status of an API client
type APIClientStatus string

const (
	APIClientStatusActive  APIClientStatus = "active"
	APIClientStatusRevoked APIClientStatus = "revoked"
)

// Secret cost for bcrypt
const bcryptCost = 12

// APIClient represents a machine credential a tenant uses to call protected
// endpoints. The secret is bcrypt-hashed at rest; the plaintext exists only
// in the creation response.
type APIClient struct {
	shared.TenantEntity
	ClientID   string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_client_tenant_cid,priority:2"`
	Name       string          `gorm:"type:varchar(100);not null"`
	SecretHash string          `gorm:"type:varchar(100);not null"`
	Scopes     string          `gorm:"type:varchar(500)"`
	Status     APIClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastUsedAt *time.Time
}

// TableName returns the table name for GORM
func (APIClient) TableName() string {
	return "api_clients"
}

// NewAPIClient creates an API client with the given plaintext secret. The
// secret is hashed immediately and never stored.
func NewAPIClient(tenantID, clientID, name, secret string, scopes []string) (*APIClient, error) {
	if err := validateClientID(clientID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 100 characters")
	}
	if err := validateSecret(secret); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("HASH_FAILED", "Failed to hash client secret")
	}

	return &APIClient{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ClientID:     clientID,
		Name:         name,
		SecretHash:   string(hash),
		Scopes:       strings.Join(scopes, " "),
		Status:       APIClientStatusActive,
	}, nil
}

// VerifySecret verifies if the provided secret matches the stored hash
func (c *APIClient) VerifySecret(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.SecretHash), []byte(secret)) == nil
}

// RotateSecret replaces the client secret
func (c *APIClient) RotateSecret(secret string) error {
	if err := validateSecret(secret); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return shared.NewDomainError("HASH_FAILED", "Failed to hash client secret")
	}

	c.SecretHash = string(hash)
	c.UpdatedAt = time.Now()

	return nil
}

// Revoke permanently disables the client. Revoked clients cannot be
// re-activated; issue a new client instead.
func (c *APIClient) Revoke() error {
	if c.Status == APIClientStatusRevoked {
		return shared.NewDomainError("ALREADY_REVOKED", "Client is already revoked")
	}

	c.Status = APIClientStatusRevoked
	c.UpdatedAt = time.Now()

	return nil
}

// RecordUsage marks the client as used at the given time
func (c *APIClient) RecordUsage(at time.Time) {
	c.LastUsedAt = &at
	c.UpdatedAt = at
}

// IsActive returns true if the client may authenticate
func (c *APIClient) IsActive() bool {
	return c.Status == APIClientStatusActive
}

// IsRevoked returns true if the client has been revoked
func (c *APIClient) IsRevoked() bool {
	return c.Status == APIClientStatusRevoked
}

// ScopeList returns the client's scopes as a slice
func (c *APIClient) ScopeList() []string {
	if c.Scopes == "" {
		return nil
	}
	return strings.Fields(c.Scopes)
}

// HasScope returns true if the client holds the named scope
func (c *APIClient) HasScope(scope string) bool {
	for _, s := range c.ScopeList() {
		if s == scope {
			return true
		}
	}
	return false
}

// validateClientID validates the public client identifier. Client IDs share
// the tenant slug character class so they can travel in the X-API-Key header
// unescaped.
func validateClientID(clientID string) error {
	if clientID == "" {
		return shared.NewDomainError("INVALID_CLIENT_ID", "Client ID cannot be empty")
	}
	if len(clientID) > 64 {
		return shared.NewDomainError("INVALID_CLIENT_ID", "Client ID cannot exceed 64 characters")
	}
	for _, r := range clientID {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CLIENT_ID", "Client ID can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateSecret validates a plaintext client secret before hashing
func validateSecret(secret string) error {
	if len(secret) < 16 {
		return shared.NewDomainError("INVALID_SECRET", "Client secret must be at least 16 characters")
	}
	if len(secret) > 72 {
		// bcrypt truncates input beyond 72 bytes
		return shared.NewDomainError("INVALID_SECRET", "Client secret cannot exceed 72 characters")
	}
	return nil
}
