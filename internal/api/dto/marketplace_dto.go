package dto

import (
	"time"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// CreateSessionRequest payload for the identity provider.
type CreateSessionRequest struct {
	Role       domain.Role `json:"role"`
	Name       string      `json:"name"`
	City       string      `json:"city"`
	VendorName string      `json:"vendor_name"`
}

// AuthResponse carries the issued session token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse represents the session identity.
type UserResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	City       string      `json:"city,omitempty"`
	VendorName string      `json:"vendor_name,omitempty"`
}

// CreateRequirementRequest payload.
type CreateRequirementRequest struct {
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Specs    map[string]string `json:"specs"`
	PriceMin int64             `json:"price_min"`
	PriceMax int64             `json:"price_max"`
	Location string            `json:"location"`
}

// RequirementResponse provides full requirement info.
type RequirementResponse struct {
	ID            string                   `json:"id"`
	BuyerID       string                   `json:"buyer_id"`
	Title         string                   `json:"title"`
	Category      string                   `json:"category"`
	Specs         map[string]string        `json:"specs,omitempty"`
	PriceMin      int64                    `json:"price_min"`
	PriceMax      int64                    `json:"price_max"`
	Location      string                   `json:"location"`
	Status        domain.RequirementStatus `json:"status"`
	Bids          []BidResponse            `json:"bids"`
	WinningBidID  string                   `json:"winning_bid_id,omitempty"`
	PaymentMethod domain.PaymentMethod     `json:"payment_method,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// BidResponse represents one bid.
type BidResponse struct {
	ID           string    `json:"id"`
	SellerName   string    `json:"seller_name"`
	Amount       int64     `json:"amount"`
	DeliveryDays int       `json:"delivery_days"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlaceBidRequest payload.
type PlaceBidRequest struct {
	Amount       int64  `json:"amount"`
	DeliveryDays int    `json:"delivery_days"`
	Notes        string `json:"notes"`
}

// SelectBidRequest payload.
type SelectBidRequest struct {
	BidID string `json:"bid_id"`
}

// ConfirmPaymentRequest payload.
type ConfirmPaymentRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

// ResolveSpecificationRequest payload.
type ResolveSpecificationRequest struct {
	Query string `json:"query"`
}

// SuggestBidRequest payload.
type SuggestBidRequest struct {
	Title         string  `json:"title"`
	PriceMin      int64   `json:"price_min"`
	PriceMax      int64   `json:"price_max"`
	CompetingBids []int64 `json:"competing_bids"`
}

// NotificationResponse represents one entry of the viewer's log.
type NotificationResponse struct {
	ID               string                  `json:"id"`
	Message          string                  `json:"message"`
	Type             domain.NotificationType `json:"type"`
	Read             bool                    `json:"read"`
	RelatedRequestID string                  `json:"related_request_id,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}
