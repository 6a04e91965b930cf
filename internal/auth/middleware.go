package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/queueshq/queues-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as the host platform sees
// it. Resolution to agent/user records is deferred to the service layer.
type Principal struct {
	PlatformUserID int64
	Role           Role
}

// Middleware validates bearer tokens and stores the principal.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	c.Locals(principalKey, &Principal{
		PlatformUserID: claims.PlatformUserID,
		Role:           claims.Role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
