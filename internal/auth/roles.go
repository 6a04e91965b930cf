package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// Role is the coarse platform role carried in the token.
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// RequireRole guards a route group; admins pass every check.
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if principal.Role == RoleAdmin {
			return c.Next()
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
