package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// RequireBuyer ensures a BUYER is authenticated.
func RequireBuyer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.User.Role != domain.RoleBuyer {
			return fiber.NewError(http.StatusForbidden, "buyer required")
		}
		return c.Next()
	}
}

// RequireSeller ensures a SELLER is authenticated.
func RequireSeller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.User.Role != domain.RoleSeller {
			return fiber.NewError(http.StatusForbidden, "seller required")
		}
		return c.Next()
	}
}
