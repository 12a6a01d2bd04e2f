package domain

import "time"

// RequirementStatus enumerates lifecycle states for product requirements.
type RequirementStatus string

const (
	RequirementStatusOpen   RequirementStatus = "OPEN"
	RequirementStatusClosed RequirementStatus = "CLOSED"
)

// PaymentMethod enumerates supported fulfillment payment options.
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "COD"
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "CARD"
)

// PriceRange bounds an estimated market price in whole currency units.
type PriceRange struct {
	Min int64
	Max int64
}

// Valid reports whether the range is trustworthy: positive bounds, min ≤ max.
func (p PriceRange) Valid() bool {
	return p.Min > 0 && p.Max > 0 && p.Min <= p.Max
}

// ProductRequirement is the aggregate sellers bid against. The descriptive
// payload (title, category, specs, price range, location) is immutable after
// creation; only the lifecycle fields change. Bids keeps append order.
type ProductRequirement struct {
	ID             string
	BuyerID        string
	Title          string
	Category       string
	Specs          map[string]string
	EstimatedPrice PriceRange
	Location       string
	Status         RequirementStatus
	Bids           []Bid
	WinningBidID   string
	PaymentMethod  PaymentMethod
	CreatedAt      time.Time
}

// BidBySeller returns the bid submitted under the given vendor identity,
// if any. At most one bid per vendor exists within a requirement.
func (r *ProductRequirement) BidBySeller(sellerName string) *Bid {
	for i := range r.Bids {
		if r.Bids[i].SellerName == sellerName {
			return &r.Bids[i]
		}
	}
	return nil
}

// BidByID returns the bid with the given id, if it belongs to the requirement.
func (r *ProductRequirement) BidByID(bidID string) *Bid {
	for i := range r.Bids {
		if r.Bids[i].ID == bidID {
			return &r.Bids[i]
		}
	}
	return nil
}

// WinningBid resolves the winning bid once the requirement is closed.
func (r *ProductRequirement) WinningBid() *Bid {
	if r.WinningBidID == "" {
		return nil
	}
	return r.BidByID(r.WinningBidID)
}

// CompetingVendors lists the distinct vendor identities with bids on the
// requirement, excluding the given one. Used for competitor fan-out.
func (r *ProductRequirement) CompetingVendors(exclude string) []string {
	seen := map[string]bool{}
	vendors := []string{}
	for i := range r.Bids {
		name := r.Bids[i].SellerName
		if name == exclude || seen[name] {
			continue
		}
		seen[name] = true
		vendors = append(vendors, name)
	}
	return vendors
}

// Clone returns a deep copy safe to hand to readers.
func (r *ProductRequirement) Clone() *ProductRequirement {
	if r == nil {
		return nil
	}
	out := *r
	out.Bids = append([]Bid(nil), r.Bids...)
	if r.Specs != nil {
		out.Specs = make(map[string]string, len(r.Specs))
		for k, v := range r.Specs {
			out.Specs[k] = v
		}
	}
	return &out
}
