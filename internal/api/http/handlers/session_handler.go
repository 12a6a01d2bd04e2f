package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/api/dto"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/registry"
	"github.com/avinashingale116-sys/mydeal/internal/service"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// SessionHandler exposes the identity provider endpoints.
type SessionHandler struct {
	identity *service.IdentityService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(identity *service.IdentityService) *SessionHandler {
	return &SessionHandler{identity: identity}
}

// Create handles POST /auth/session.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.identity.CreateSession(c.Context(), service.SessionInput{
		Role:       req.Role,
		Name:       req.Name,
		City:       req.City,
		VendorName: req.VendorName,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Vendors handles GET /auth/vendors?city= — the registry a seller picks a
// storefront from.
func (h *SessionHandler) Vendors(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return c.JSON(fiber.Map{"data": fiber.Map{"cities": registry.Cities()}})
	}
	vendors := registry.VendorsIn(city)
	if vendors == nil {
		return apperrors.NewNotFound("city", map[string]any{"city": city})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"city": city, "vendors": vendors}})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Role:       user.Role,
		City:       user.City,
		VendorName: user.VendorName,
	}
}
