package identity

import (
	"context"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/auth"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// TokenService implements the client-credentials flow: API clients exchange
// their ID and secret for a short-lived access token plus refresh token.
type TokenService struct {
	clients identity.APIClientRepository
	jwt     *auth.JWTService
	metrics *telemetry.BusinessMetrics
}

// NewTokenService creates a new TokenService
func NewTokenService(clients identity.APIClientRepository, jwt *auth.JWTService) *TokenService {
	return &TokenService{
		clients: clients,
		jwt:     jwt,
	}
}

// SetBusinessMetrics sets the business metrics collector. Optional; when
// unset no metrics are recorded.
func (s *TokenService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// invalidCredentials is returned for every credential failure. Unknown
// client, revoked client, and wrong secret must be indistinguishable.
func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid client credentials")
}

// IssueToken verifies the client's credentials and issues a token pair
func (s *TokenService) IssueToken(ctx context.Context, tenantID string, req IssueTokenRequest) (*TokenResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "token", "issue")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrClientID, req.ClientID,
	)

	client, err := s.clients.FindByClientID(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, invalidCredentials()
	}
	if !client.IsActive() {
		return nil, invalidCredentials()
	}
	if !client.VerifySecret(req.ClientSecret) {
		return nil, invalidCredentials()
	}

	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID:   tenantID,
		ClientID:   client.ClientID,
		ClientName: client.Name,
		Scopes:     client.ScopeList(),
	})
	if err != nil {
		return nil, err
	}

	// Usage tracking must not fail token issuance
	client.RecordUsage(time.Now())
	_ = s.clients.Save(ctx, client)

	if s.metrics != nil {
		s.metrics.RecordTokenIssued(ctx, tenantID, telemetry.GrantTypeClientCredentials)
	}

	return toTokenResponse(pair, client.ScopeList()), nil
}

// Refresh exchanges a valid refresh token for a new pair. The client is
// re-checked so a revoked client cannot keep refreshing its way past
// revocation, and scopes are re-read from the stored client.
func (s *TokenService) Refresh(ctx context.Context, tenantID string, req RefreshTokenRequest) (*TokenResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "token", "refresh")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrTenantID, tenantID)

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token is invalid or expired")
	}
	if claims.TenantID != tenantID {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token does not belong to this tenant")
	}

	client, err := s.clients.FindByClientID(ctx, tenantID, claims.ClientID)
	if err != nil || !client.IsActive() {
		return nil, invalidCredentials()
	}

	pair, err := s.jwt.RefreshTokenPair(req.RefreshToken, client.ScopeList())
	if err != nil {
		if err == auth.ErrMaxRefreshExceeded {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been refreshed too many times")
		}
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token is invalid or expired")
	}

	if s.metrics != nil {
		s.metrics.RecordTokenIssued(ctx, tenantID, telemetry.GrantTypeRefreshToken)
	}

	return toTokenResponse(pair, client.ScopeList()), nil
}

// Introspect reports the claims of a validated access token. Validation
// happens in the bearer middleware; this method only shapes the response.
func (s *TokenService) Introspect(claims *auth.Claims) *IntrospectResponse {
	if claims == nil {
		return &IntrospectResponse{Active: false}
	}
	return &IntrospectResponse{
		Active:    true,
		TenantID:  claims.TenantID,
		ClientID:  claims.ClientID,
		Scopes:    claims.Scopes,
		IssuedAt:  claims.GetIssuedAtTime(),
		ExpiresAt: claims.GetExpiresAtTime(),
	}
}

// toTokenResponse maps a token pair into the API response shape
func toTokenResponse(pair *auth.TokenPair, scopes []string) *TokenResponse {
	return &TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		Scopes:       scopes,
	}
}
