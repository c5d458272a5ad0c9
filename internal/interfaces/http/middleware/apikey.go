package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/logger"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/guard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIKeyVerification verifies the X-API-Key header against stored client
// credentials. The key format is "<clientID>.<secret>"; the client is looked
// up within the caller's tenant and the secret bcrypt-compared.
//
// This middleware only verifies; the existence check lives in the guard
// chain (guard.APIKey) and runs before it. Keeping the two separate means a
// route can require key presence without paying a credential lookup, and
// the verification layer can be swapped without touching the guard
// contract.
func APIKeyVerification(clients identity.APIClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(guard.HeaderAPIKey)
		tenantID := c.GetHeader(guard.HeaderTenantID)
		log := logger.FromContext(c.Request.Context())

		clientID, secret, ok := splitAPIKey(key)
		if !ok {
			log.Warn("API key rejected: malformed key",
				zap.String("path", c.Request.URL.Path),
			)
			rejectAPIKey(c, http.StatusUnauthorized, dto.ErrCodeInvalidAPIKey)
			return
		}

		client, err := clients.FindByClientID(c.Request.Context(), tenantID, clientID)
		if err != nil {
			// Not-found and lookup failure are indistinguishable to the
			// caller so key probing can't enumerate client IDs
			log.Warn("API key rejected: unknown client",
				zap.String("client_id", clientID),
			)
			rejectAPIKey(c, http.StatusUnauthorized, dto.ErrCodeInvalidAPIKey)
			return
		}

		if client.IsRevoked() {
			log.Warn("API key rejected: revoked client",
				zap.String("client_id", clientID),
			)
			rejectAPIKey(c, http.StatusForbidden, dto.ErrCodeAPIKeyRevoked)
			return
		}

		if !client.VerifySecret(secret) {
			log.Warn("API key rejected: secret mismatch",
				zap.String("client_id", clientID),
			)
			rejectAPIKey(c, http.StatusUnauthorized, dto.ErrCodeInvalidAPIKey)
			return
		}

		// Best effort; a failed usage write must not fail the request
		client.RecordUsage(time.Now())
		if err := clients.Save(c.Request.Context(), client); err != nil {
			log.Debug("Failed to record API key usage", zap.Error(err))
		}

		c.Set(JWTClientIDKey, client.ClientID)
		c.Next()
	}
}

// splitAPIKey splits "<clientID>.<secret>" into its parts. Secrets may
// themselves contain dots, so only the first separator counts.
func splitAPIKey(key string) (clientID, secret string, ok bool) {
	idx := strings.Index(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}

// rejectAPIKey writes the flat envelope for a failed key verification
func rejectAPIKey(c *gin.Context, status int, code string) {
	message := "API key verification failed"
	if code == dto.ErrCodeAPIKeyRevoked {
		message = "API key has been revoked"
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(
		code,
		message,
		GetRequestID(c),
	))
}
