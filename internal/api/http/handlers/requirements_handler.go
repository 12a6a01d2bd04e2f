package handlers

import (
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/api/dto"
	"github.com/avinashingale116-sys/mydeal/internal/auth"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/service"
	"github.com/avinashingale116-sys/mydeal/internal/visibility"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// RequirementsHandler manages requirement and bid endpoints.
type RequirementsHandler struct {
	market *service.MarketService
}

// NewRequirementsHandler constructs handler.
func NewRequirementsHandler(market *service.MarketService) *RequirementsHandler {
	return &RequirementsHandler{market: market}
}

// List GET /requirements?category=&city=. Anonymous viewers are allowed;
// the visibility engine decides what each viewer sees.
func (h *RequirementsHandler) List(c *fiber.Ctx) error {
	viewer := viewerFromContext(c)
	category := c.Query("category", visibility.CategoryAll)
	city := c.Query("city")

	requirements, err := h.market.ListRequirements(c.Context(), viewer, category, city)
	if err != nil {
		return err
	}

	result := make([]dto.RequirementResponse, 0, len(requirements))
	for i := range requirements {
		result = append(result, requirementResponse(&requirements[i]))
	}
	return c.JSON(fiber.Map{"data": result})
}

// Get GET /requirements/:id.
func (h *RequirementsHandler) Get(c *fiber.Ctx) error {
	viewer := viewerFromContext(c)
	req, err := h.market.GetRequirement(c.Context(), viewer, c.Query("city"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requirementResponse(req)})
}

// Create POST /requirements.
func (h *RequirementsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("buyer session required")
	}
	var req dto.CreateRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.market.CreateRequirement(c.Context(), principal.User, service.RequirementCreateInput{
		Title:          req.Title,
		Category:       req.Category,
		Specs:          req.Specs,
		EstimatedPrice: domain.PriceRange{Min: req.PriceMin, Max: req.PriceMax},
		Location:       req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requirementResponse(created)})
}

// PlaceBid POST /requirements/:id/bids.
func (h *RequirementsHandler) PlaceBid(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("seller session required")
	}
	var req dto.PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	bid, err := h.market.PlaceBid(c.Context(), principal.User, c.Params("id"), service.BidInput{
		Amount:       req.Amount,
		DeliveryDays: req.DeliveryDays,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bidResponse(bid)})
}

// SelectBid POST /requirements/:id/select.
func (h *RequirementsHandler) SelectBid(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("buyer session required")
	}
	var req dto.SelectBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BidID == "" {
		return apperrors.NewValidationError("bid_id required", nil)
	}

	pending, err := h.market.SelectBid(c.Context(), principal.User, c.Params("id"), req.BidID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requirement_id": pending.RequirementID,
		"bid_id":         pending.BidID,
		"state":          "AWAITING_PAYMENT",
	}})
}

// ConfirmPayment POST /requirements/:id/confirm.
func (h *RequirementsHandler) ConfirmPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("buyer session required")
	}
	var req dto.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	closed, err := h.market.ConfirmPayment(c.Context(), principal.User, c.Params("id"), req.PaymentMethod)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requirementResponse(closed)})
}

func viewerFromContext(c *fiber.Ctx) *domain.User {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal == nil {
		return nil
	}
	return principal.User
}

func requirementResponse(req *domain.ProductRequirement) dto.RequirementResponse {
	// Stored order is append order; displayed order is lowest amount first.
	bids := make([]dto.BidResponse, 0, len(req.Bids))
	for i := range req.Bids {
		bids = append(bids, bidResponse(&req.Bids[i]))
	}
	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Amount < bids[j].Amount })

	return dto.RequirementResponse{
		ID:            req.ID,
		BuyerID:       req.BuyerID,
		Title:         req.Title,
		Category:      req.Category,
		Specs:         req.Specs,
		PriceMin:      req.EstimatedPrice.Min,
		PriceMax:      req.EstimatedPrice.Max,
		Location:      req.Location,
		Status:        req.Status,
		Bids:          bids,
		WinningBidID:  req.WinningBidID,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     req.CreatedAt,
	}
}

func bidResponse(bid *domain.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:           bid.ID,
		SellerName:   bid.SellerName,
		Amount:       bid.Amount,
		DeliveryDays: bid.DeliveryDays,
		Notes:        bid.Notes,
		CreatedAt:    bid.CreatedAt,
	}
}
