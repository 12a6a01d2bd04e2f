package events

import (
	"time"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequirementCreated EventType = "requirement_created"
	EventBidPlaced          EventType = "bid_placed"
	EventBidAccepted        EventType = "bid_accepted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role       domain.Role `json:"role"`
	UserID     *string     `json:"user_id,omitempty"`
	VendorName *string     `json:"vendor_name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	RequirementID string      `json:"requirement_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// RequirementCreatedPayload payload.
type RequirementCreatedPayload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// BidPlacedPayload payload. Competitors lists the distinct vendor identities
// already bidding on the requirement, excluding the bidder; each receives a
// warning notification about the new amount.
type BidPlacedPayload struct {
	BidID       string   `json:"bid_id"`
	SellerName  string   `json:"seller_name"`
	Amount      int64    `json:"amount"`
	Title       string   `json:"title"`
	Competitors []string `json:"competitors"`
}

// BidAcceptedPayload payload. Emitted at payment confirmation, never at bid
// selection.
type BidAcceptedPayload struct {
	BidID         string               `json:"bid_id"`
	SellerName    string               `json:"seller_name"`
	Amount        int64                `json:"amount"`
	Title         string               `json:"title"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}
