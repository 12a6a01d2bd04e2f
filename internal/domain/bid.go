package domain

import "time"

// Bid is a vendor's priced, timed offer against a ProductRequirement. Bids
// are identified by vendor identity within a requirement: one bid per
// distinct SellerName, no revision, no withdrawal.
type Bid struct {
	ID            string
	RequirementID string
	SellerName    string
	Amount        int64
	DeliveryDays  int
	Notes         string
	CreatedAt     time.Time
}
