package domain

import "time"

// PendingAcceptance is the explicit intermediate state of the two-phase
// accept flow: the buyer has selected a bid but not yet confirmed payment.
// It is the only path to the CLOSED transition and must not be observable
// by any other actor.
type PendingAcceptance struct {
	RequirementID string
	BidID         string
	BuyerID       string
	SelectedAt    time.Time
}
