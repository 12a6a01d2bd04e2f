package domain

import "time"

// Role differentiates the two marketplace actors.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// User is the domain model for marketplace participants. Sellers act under a
// vendor storefront identity (VendorName) which is distinct from their
// personal name and must come from the per-city vendor registry.
type User struct {
	ID         string
	Name       string
	Role       Role
	City       string
	VendorName string
	CreatedAt  time.Time
}

// CanBid reports whether the user may submit bids at all. A seller without a
// resolved vendor identity must never produce a bid.
func (u *User) CanBid() bool {
	return u != nil && u.Role == RoleSeller && u.VendorName != ""
}
