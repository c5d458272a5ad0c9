package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityapp "github.com/adebold/Commerce-Studio-sub022/internal/application/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/auth"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/config"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/persistence"
)

func newAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:                 "integration-test-access-secret",
		RefreshSecret:          "integration-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "commerce-studio-test",
		MaxRefreshCount:        5,
	}
}

func TestTokenService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	clients := persistence.NewGormAPIClientRepository(testDB.DB)
	jwtService := auth.NewJWTService(newAuthConfig())
	service := identityapp.NewTokenService(clients, jwtService)
	ctx := context.Background()
	tenantID := "tenant-auth-it"

	const secret = "storefront-secret-0123456789"
	client, err := identity.NewAPIClient(tenantID, "storefront-web", "Storefront Web", secret, []string{"recommendations:read", "search:read"})
	require.NoError(t, err)
	require.NoError(t, clients.Save(ctx, client))

	t.Run("issue token with valid credentials", func(t *testing.T) {
		resp, err := service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "storefront-web",
			ClientSecret: secret,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.ElementsMatch(t, []string{"recommendations:read", "search:read"}, resp.Scopes)

		claims, err := jwtService.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, tenantID, claims.TenantID)
		assert.Equal(t, "storefront-web", claims.ClientID)
	})

	t.Run("issuing a token records usage", func(t *testing.T) {
		_, err := service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "storefront-web",
			ClientSecret: secret,
		})
		require.NoError(t, err)

		stored, err := clients.FindByClientID(ctx, tenantID, "storefront-web")
		require.NoError(t, err)
		require.NotNil(t, stored.LastUsedAt)
		assert.WithinDuration(t, time.Now(), *stored.LastUsedAt, time.Minute)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		_, err := service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "storefront-web",
			ClientSecret: "wrong-secret-0123456789",
		})
		assert.Error(t, err)
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		_, err := service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "nobody",
			ClientSecret: secret,
		})
		assert.Error(t, err)
	})

	t.Run("credentials do not cross tenants", func(t *testing.T) {
		_, err := service.IssueToken(ctx, "tenant-other", identityapp.IssueTokenRequest{
			ClientID:     "storefront-web",
			ClientSecret: secret,
		})
		assert.Error(t, err)
	})

	t.Run("refresh rotates the pair", func(t *testing.T) {
		issued, err := service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "storefront-web",
			ClientSecret: secret,
		})
		require.NoError(t, err)

		refreshed, err := service.Refresh(ctx, tenantID, identityapp.RefreshTokenRequest{
			RefreshToken: issued.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, issued.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("revoked client cannot get tokens", func(t *testing.T) {
		revokedSecret := "revoked-secret-0123456789"
		revoked, err := identity.NewAPIClient(tenantID, "revoked-client", "Revoked Client", revokedSecret, nil)
		require.NoError(t, err)
		require.NoError(t, revoked.Revoke())
		require.NoError(t, clients.Save(ctx, revoked))

		_, err = service.IssueToken(ctx, tenantID, identityapp.IssueTokenRequest{
			ClientID:     "revoked-client",
			ClientSecret: revokedSecret,
		})
		assert.Error(t, err)
	})
}
