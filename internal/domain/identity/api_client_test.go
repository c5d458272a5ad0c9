package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret-s3cret-s3cret"

func TestNewAPIClient(t *testing.T) {
	t.Run("creates client and hashes the secret", func(t *testing.T) {
		client, err := NewAPIClient("tenant-1", "storefront-web", "Storefront Web", testSecret, []string{"search:write"})
		require.NoError(t, err)
		require.NotNil(t, client)

		assert.Equal(t, "tenant-1", client.TenantID)
		assert.Equal(t, "storefront-web", client.ClientID)
		assert.Equal(t, APIClientStatusActive, client.Status)
		assert.NotEqual(t, testSecret, client.SecretHash)
		assert.True(t, client.VerifySecret(testSecret))
		assert.False(t, client.VerifySecret("wrong-secret-wrong"))
	})

	t.Run("fails with invalid client ID characters", func(t *testing.T) {
		_, err := NewAPIClient("tenant-1", "store front", "Storefront", testSecret, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with short secret", func(t *testing.T) {
		_, err := NewAPIClient("tenant-1", "storefront-web", "Storefront", "short", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 16 characters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewAPIClient("tenant-1", "storefront-web", "", testSecret, nil)
		require.Error(t, err)
	})
}

func TestAPIClientRevoke(t *testing.T) {
	client, err := NewAPIClient("tenant-1", "storefront-web", "Storefront Web", testSecret, nil)
	require.NoError(t, err)

	t.Run("revokes an active client", func(t *testing.T) {
		require.NoError(t, client.Revoke())
		assert.True(t, client.IsRevoked())
		assert.False(t, client.IsActive())
	})

	t.Run("revoking twice fails", func(t *testing.T) {
		assert.Error(t, client.Revoke())
	})
}

func TestAPIClientRotateSecret(t *testing.T) {
	client, err := NewAPIClient("tenant-1", "storefront-web", "Storefront Web", testSecret, nil)
	require.NoError(t, err)

	const rotated = "brand-new-secret-value"
	require.NoError(t, client.RotateSecret(rotated))

	assert.False(t, client.VerifySecret(testSecret))
	assert.True(t, client.VerifySecret(rotated))
}

func TestAPIClientScopes(t *testing.T) {
	client, err := NewAPIClient("tenant-1", "storefront-web", "Storefront Web", testSecret, []string{"search:write", "catalog:write"})
	require.NoError(t, err)

	assert.Equal(t, []string{"search:write", "catalog:write"}, client.ScopeList())
	assert.True(t, client.HasScope("catalog:write"))
	assert.False(t, client.HasScope("admin"))
}

func TestAPIClientRecordUsage(t *testing.T) {
	client, err := NewAPIClient("tenant-1", "storefront-web", "Storefront Web", testSecret, nil)
	require.NoError(t, err)
	require.Nil(t, client.LastUsedAt)

	now := time.Now()
	client.RecordUsage(now)

	require.NotNil(t, client.LastUsedAt)
	assert.Equal(t, now, *client.LastUsedAt)
}
