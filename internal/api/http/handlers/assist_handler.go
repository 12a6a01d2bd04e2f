package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/advisor"
	"github.com/avinashingale116-sys/mydeal/internal/api/dto"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/resolver"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// AssistHandler fronts the two external collaborators: the specification
// resolver and the bid-pricing advisor. Neither endpoint mutates the store.
type AssistHandler struct {
	resolver *resolver.Client
	advisor  *advisor.Client
}

// NewAssistHandler constructs handler.
func NewAssistHandler(resolverClient *resolver.Client, advisorClient *advisor.Client) *AssistHandler {
	return &AssistHandler{resolver: resolverClient, advisor: advisorClient}
}

// ResolveSpecification POST /resolver/specifications.
func (h *AssistHandler) ResolveSpecification(c *fiber.Ctx) error {
	var req dto.ResolveSpecificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	spec, err := h.resolver.Resolve(c.Context(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": spec})
}

// SuggestBid POST /advisor/suggestions.
func (h *AssistHandler) SuggestBid(c *fiber.Ctx) error {
	var req dto.SuggestBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	suggestion, err := h.advisor.Suggest(c.Context(), advisor.Request{
		Title:         req.Title,
		MarketPrice:   domain.PriceRange{Min: req.PriceMin, Max: req.PriceMax},
		CompetingBids: req.CompetingBids,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestion})
}
