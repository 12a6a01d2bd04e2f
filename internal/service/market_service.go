package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/events"
	"github.com/avinashingale116-sys/mydeal/internal/repository"
	"github.com/avinashingale116-sys/mydeal/internal/visibility"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// MarketService owns the valid state transitions of requirements and their
// bids. It validates, mutates the store, and emits events; what a viewer
// sees is the visibility engine's job.
type MarketService struct {
	requirements repository.RequirementRepository
	dispatcher   events.Dispatcher

	mu      sync.Mutex
	pending map[string]domain.PendingAcceptance
}

// MarketDependencies bundles requirements for the market service.
type MarketDependencies struct {
	RequirementRepo repository.RequirementRepository
	Dispatcher      events.Dispatcher
}

// RequirementCreateInput describes requirement creation payload.
type RequirementCreateInput struct {
	Title          string
	Category       string
	Specs          map[string]string
	EstimatedPrice domain.PriceRange
	Location       string
}

// BidInput describes bid submission payload.
type BidInput struct {
	Amount       int64
	DeliveryDays int
	Notes        string
}

// NewMarketService constructs the service.
func NewMarketService(deps MarketDependencies) *MarketService {
	return &MarketService{
		requirements: deps.RequirementRepo,
		dispatcher:   deps.Dispatcher,
		pending:      make(map[string]domain.PendingAcceptance),
	}
}

// CreateRequirement posts a new OPEN requirement for a buyer.
func (s *MarketService) CreateRequirement(ctx context.Context, buyer *domain.User, input RequirementCreateInput) (*domain.ProductRequirement, error) {
	if buyer == nil || buyer.Role != domain.RoleBuyer {
		return nil, apperrors.NewForbidden("buyer required")
	}
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	location := strings.TrimSpace(input.Location)
	if title == "" || category == "" || location == "" {
		return nil, apperrors.NewValidationError("title, category, location required", nil)
	}
	if !input.EstimatedPrice.Valid() {
		return nil, apperrors.NewValidationError("estimated price range invalid", map[string]any{
			"min": input.EstimatedPrice.Min,
			"max": input.EstimatedPrice.Max,
		})
	}

	req := &domain.ProductRequirement{
		BuyerID:        buyer.ID,
		Title:          title,
		Category:       category,
		Specs:          input.Specs,
		EstimatedPrice: input.EstimatedPrice,
		Location:       location,
		Status:         domain.RequirementStatusOpen,
	}
	if err := s.requirements.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventRequirementCreated,
		RequirementID: req.ID,
		Actor:         buyerActor(buyer.ID),
		Payload: events.RequirementCreatedPayload{
			Title:    req.Title,
			Category: req.Category,
			Location: req.Location,
		},
	})
	return req, nil
}

// ListRequirements computes the viewer's listing. A nil viewer is an
// anonymous browser scoped to selectedCity.
func (s *MarketService) ListRequirements(ctx context.Context, viewer *domain.User, categoryFilter, selectedCity string) ([]domain.ProductRequirement, error) {
	all, err := s.requirements.List(ctx, repository.RequirementFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return visibility.VisibleRequirements(all, viewer, categoryFilter, selectedCity), nil
}

// GetRequirement fetches a requirement the viewer is allowed to see.
func (s *MarketService) GetRequirement(ctx context.Context, viewer *domain.User, selectedCity, id string) (*domain.ProductRequirement, error) {
	req, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("requirement", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	visible := visibility.VisibleRequirements([]domain.ProductRequirement{*req}, viewer, visibility.CategoryAll, selectedCity)
	if len(visible) == 0 {
		return nil, apperrors.NewForbidden("requirement not visible to viewer")
	}
	return req, nil
}

// PlaceBid validates and appends a seller's bid. Every distinct competing
// vendor already on the requirement is warned about the new amount; the
// buyer is not notified.
func (s *MarketService) PlaceBid(ctx context.Context, seller *domain.User, requirementID string, input BidInput) (*domain.Bid, error) {
	if seller == nil || seller.Role != domain.RoleSeller {
		return nil, apperrors.NewForbidden("seller required")
	}
	if !seller.CanBid() {
		return nil, apperrors.NewValidationError("seller has no vendor identity", nil)
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("bid amount must be positive", map[string]any{"amount": input.Amount})
	}
	if input.DeliveryDays <= 0 {
		return nil, apperrors.NewValidationError("delivery days must be positive", map[string]any{"delivery_days": input.DeliveryDays})
	}

	req, err := s.requirements.GetByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("requirement", map[string]any{"id": requirementID})
		}
		return nil, apperrors.MapError(err)
	}
	if req.Status != domain.RequirementStatusOpen {
		return nil, apperrors.NewConflict("requirement is closed", nil)
	}
	if req.BidBySeller(seller.VendorName) != nil {
		return nil, apperrors.NewConflict("vendor already has a bid on this requirement", nil)
	}

	competitors := req.CompetingVendors(seller.VendorName)

	bid := &domain.Bid{
		SellerName:   seller.VendorName,
		Amount:       input.Amount,
		DeliveryDays: input.DeliveryDays,
		Notes:        strings.TrimSpace(input.Notes),
	}
	// The repository re-checks status and vendor uniqueness at the moment of
	// mutation; the checks above only produce friendlier errors.
	if err := s.requirements.AddBid(ctx, requirementID, bid); err != nil {
		return nil, mapBidError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventBidPlaced,
		RequirementID: requirementID,
		Actor:         vendorActor(seller.ID, seller.VendorName),
		Payload: events.BidPlacedPayload{
			BidID:       bid.ID,
			SellerName:  bid.SellerName,
			Amount:      bid.Amount,
			Title:       req.Title,
			Competitors: competitors,
		},
	})
	return bid, nil
}

// SelectBid records the buyer's chosen bid as awaiting payment. Selection
// alone is not observable by any other actor: no status change, no
// notifications.
func (s *MarketService) SelectBid(ctx context.Context, buyer *domain.User, requirementID, bidID string) (*domain.PendingAcceptance, error) {
	if buyer == nil || buyer.Role != domain.RoleBuyer {
		return nil, apperrors.NewForbidden("buyer required")
	}

	req, err := s.requirements.GetByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("requirement", map[string]any{"id": requirementID})
		}
		return nil, apperrors.MapError(err)
	}
	if req.BuyerID != buyer.ID {
		return nil, apperrors.NewForbidden("not the requesting buyer")
	}
	if req.Status != domain.RequirementStatusOpen {
		return nil, apperrors.NewConflict("requirement is closed", nil)
	}
	if req.BidByID(bidID) == nil {
		return nil, apperrors.NewNotFound("bid", map[string]any{"id": bidID})
	}

	pending := domain.PendingAcceptance{
		RequirementID: requirementID,
		BidID:         bidID,
		BuyerID:       buyer.ID,
		SelectedAt:    time.Now(),
	}
	s.mu.Lock()
	s.pending[requirementID] = pending
	s.mu.Unlock()
	return &pending, nil
}

// ConfirmPayment commits the OPEN→CLOSED transition: winning bid and payment
// method are set atomically, exactly once. Only a prior SelectBid by the
// same buyer opens this path.
func (s *MarketService) ConfirmPayment(ctx context.Context, buyer *domain.User, requirementID string, method domain.PaymentMethod) (*domain.ProductRequirement, error) {
	if buyer == nil || buyer.Role != domain.RoleBuyer {
		return nil, apperrors.NewForbidden("buyer required")
	}
	if !validPaymentMethod(method) {
		return nil, apperrors.NewValidationError("unknown payment method", map[string]any{"method": method})
	}

	s.mu.Lock()
	pending, ok := s.pending[requirementID]
	s.mu.Unlock()
	if !ok || pending.BuyerID != buyer.ID {
		return nil, apperrors.NewConflict("no bid selected for this requirement", nil)
	}

	if err := s.requirements.Close(ctx, requirementID, pending.BidID, method); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("requirement already closed", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.mu.Lock()
	delete(s.pending, requirementID)
	s.mu.Unlock()

	req, err := s.requirements.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if winning := req.WinningBid(); winning != nil {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventBidAccepted,
			RequirementID: requirementID,
			Actor:         buyerActor(buyer.ID),
			Payload: events.BidAcceptedPayload{
				BidID:         winning.ID,
				SellerName:    winning.SellerName,
				Amount:        winning.Amount,
				Title:         req.Title,
				PaymentMethod: method,
			},
		})
	}
	return req, nil
}

func mapBidError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewConflict("requirement is closed", nil)
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if strings.Contains(err.Error(), "already has a bid") || strings.Contains(err.Error(), "duplicate key") {
		return apperrors.NewConflict("vendor already has a bid on this requirement", nil)
	}
	return apperrors.MapError(err)
}

func validPaymentMethod(method domain.PaymentMethod) bool {
	switch method {
	case domain.PaymentMethodCOD, domain.PaymentMethodUPI, domain.PaymentMethodCard:
		return true
	}
	return false
}

func (s *MarketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func buyerActor(userID string) events.Actor {
	return events.Actor{
		Role:   domain.RoleBuyer,
		UserID: &userID,
	}
}

func vendorActor(userID, vendorName string) events.Actor {
	return events.Actor{
		Role:       domain.RoleSeller,
		UserID:     &userID,
		VendorName: &vendorName,
	}
}
