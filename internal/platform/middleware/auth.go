package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

const identityKey = "auth_identity"

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// IdentityResolver loads the current identity for a token subject.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (auth.Identity, error)
}

// AuthMiddleware requires a valid bearer token whose subject still exists and
// stores the resolved auth.Identity on the context.
func AuthMiddleware(tokens TokenValidator, identities IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "no autorizado, token requerido")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			response.Unauthorized(c, "no autorizado, token inválido")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "no autorizado, token inválido")
			return
		}

		identity, err := identities.ResolveIdentity(c.Request.Context(), userID)
		if err != nil {
			response.Unauthorized(c, "no autorizado, usuario no encontrado")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
