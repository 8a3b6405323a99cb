// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"clubhub-service/internal/domain/auth"
	xerrors "clubhub-service/internal/pkg/errors"
	"clubhub-service/internal/pkg/response"
	authService "clubhub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type AuthMiddleware struct {
	authService *authService.AuthService
}

func NewAuthMiddleware(svc *authService.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: svc}
}

// Auth validates the bearer token and stashes the freshly resolved identity
// in the request context. Every protected call goes back to the credential
// store; nothing about a previous verification is reused.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, xerrors.ErrTokenInvalid.Error())
			return
		}

		identity, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, xerrors.MessageOrDefault(err, "unauthorized"))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole gates a route on an exact role match. Must run after Auth();
// a missing identity here means the authentication check never passed, which
// stays a 401, not a 403.
func (m *AuthMiddleware) RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, xerrors.ErrTokenInvalid.Error())
			return
		}

		if err := authService.Authorize(identity, role); err != nil {
			response.Error(c, http.StatusForbidden, xerrors.ErrForbidden.Error())
			return
		}

		c.Next()
	}
}

// AdminOnly composes Auth + RequireRole(admin).
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(auth.RoleAdmin),
	}
}

// extractToken pulls the token out of the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// GetIdentity returns the resolved identity from the request context.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok
}

// MustGetIdentity returns the resolved identity or panics. Only for handlers
// registered behind Auth().
func MustGetIdentity(c *gin.Context) *auth.Identity {
	identity, ok := GetIdentity(c)
	if !ok {
		panic("identity not found in context")
	}
	return identity
}
