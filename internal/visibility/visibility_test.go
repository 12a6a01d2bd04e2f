package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

func requirementAt(id, buyerID, category, location string, status domain.RequirementStatus, createdAt time.Time) domain.ProductRequirement {
	return domain.ProductRequirement{
		ID:        id,
		BuyerID:   buyerID,
		Title:     "Test " + category,
		Category:  category,
		Location:  location,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestMatchesCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		filter   string
		want     bool
	}{
		{"all passes everything", "Washing Machine", "All", true},
		{"empty filter passes", "Washing Machine", "", true},
		{"exact match", "Refrigerator", "Refrigerator", true},
		{"synonym fridge matches refrigerator", "Refrigerator", "Fridge", true},
		{"substring mini fridge", "Mini Fridge", "Fridge", true},
		{"fridge does not match tv", "TV", "Fridge", false},
		{"synonym ac matches air conditioner", "Air Conditioner", "AC", true},
		{"synonym tv matches television", "Television", "TV", true},
		{"synonym mobile matches phone", "Phone", "Mobile", true},
		{"reverse synonym phone matches mobile", "Mobile", "Phone", true},
		{"case insensitive substring", "Smart TELEVISION 55in", "television", true},
		{"no match", "Microwave", "Fridge", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesCategory(tt.category, tt.filter))
		})
	}
}

func TestVisibleRequirementsSortedNewestFirst(t *testing.T) {
	base := time.Now()
	all := []domain.ProductRequirement{
		requirementAt("r1", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, base.Add(-3*time.Hour)),
		requirementAt("r2", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, base.Add(-1*time.Hour)),
		requirementAt("r3", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, base.Add(-2*time.Hour)),
	}

	visible := VisibleRequirements(all, nil, CategoryAll, "Mumbai")
	require.Len(t, visible, 3)
	for i := 1; i < len(visible); i++ {
		assert.True(t, visible[i-1].CreatedAt.After(visible[i].CreatedAt),
			"requirements must be strictly newest first")
	}
	assert.Equal(t, "r2", visible[0].ID)
	assert.Equal(t, "r1", visible[2].ID)
}

func TestAnonymousViewer(t *testing.T) {
	now := time.Now()
	closed := requirementAt("r1", "b1", "TV", "Mumbai", domain.RequirementStatusClosed, now)
	openHere := requirementAt("r2", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, now.Add(-time.Minute))
	openElsewhere := requirementAt("r3", "b1", "TV", "Delhi", domain.RequirementStatusOpen, now.Add(-2*time.Minute))

	visible := VisibleRequirements([]domain.ProductRequirement{closed, openHere, openElsewhere}, nil, CategoryAll, "Mumbai")

	require.Len(t, visible, 1)
	assert.Equal(t, "r2", visible[0].ID, "anonymous viewers see only OPEN requirements in the selected city")
}

func TestBuyerSeesOwnFullHistory(t *testing.T) {
	now := time.Now()
	buyer := &domain.User{ID: "b1", Role: domain.RoleBuyer, City: "Mumbai"}

	all := []domain.ProductRequirement{
		requirementAt("r1", "b1", "TV", "Delhi", domain.RequirementStatusClosed, now),
		requirementAt("r2", "b1", "Fridge", "Mumbai", domain.RequirementStatusOpen, now.Add(-time.Minute)),
		requirementAt("r3", "b2", "TV", "Mumbai", domain.RequirementStatusOpen, now.Add(-2*time.Minute)),
	}

	visible := VisibleRequirements(all, buyer, CategoryAll, "Delhi")

	require.Len(t, visible, 2)
	for _, req := range visible {
		assert.Equal(t, "b1", req.BuyerID, "buyer sees exactly their own requirements")
	}
}

func TestSellerVisibility(t *testing.T) {
	now := time.Now()
	seller := &domain.User{ID: "s1", Role: domain.RoleSeller, City: "Mumbai", VendorName: "Sharma Electronics"}

	wonElsewhere := requirementAt("r1", "b1", "TV", "Delhi", domain.RequirementStatusClosed, now)
	wonElsewhere.Bids = []domain.Bid{{ID: "bid-1", SellerName: "Sharma Electronics", Amount: 40000}}
	wonElsewhere.WinningBidID = "bid-1"

	lostHere := requirementAt("r2", "b1", "TV", "Mumbai", domain.RequirementStatusClosed, now.Add(-time.Minute))
	lostHere.Bids = []domain.Bid{
		{ID: "bid-2", SellerName: "Sharma Electronics", Amount: 41000},
		{ID: "bid-3", SellerName: "Patel Appliances", Amount: 39000},
	}
	lostHere.WinningBidID = "bid-3"

	openHere := requirementAt("r3", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, now.Add(-2*time.Minute))
	openElsewhere := requirementAt("r4", "b1", "TV", "Delhi", domain.RequirementStatusOpen, now.Add(-3*time.Minute))

	all := []domain.ProductRequirement{wonElsewhere, lostHere, openHere, openElsewhere}

	// The global city selector is ignored once the seller's own city is known.
	visible := VisibleRequirements(all, seller, CategoryAll, "Delhi")

	ids := make([]string, 0, len(visible))
	for _, req := range visible {
		ids = append(ids, req.ID)
	}
	assert.Equal(t, []string{"r1", "r3"}, ids,
		"seller sees OPEN requirements in their city plus CLOSED deals they won anywhere")
}

func TestAnonymousNeverSeesClosed(t *testing.T) {
	now := time.Now()
	all := []domain.ProductRequirement{
		requirementAt("r1", "b1", "TV", "Mumbai", domain.RequirementStatusClosed, now),
		requirementAt("r2", "b1", "TV", "Delhi", domain.RequirementStatusClosed, now),
	}

	for _, city := range []string{"Mumbai", "Delhi", "Chennai"} {
		assert.Empty(t, VisibleRequirements(all, nil, CategoryAll, city))
	}
}

func TestCategoryFilterAppliesBeforeVisibility(t *testing.T) {
	now := time.Now()
	buyer := &domain.User{ID: "b1", Role: domain.RoleBuyer}

	all := []domain.ProductRequirement{
		requirementAt("r1", "b1", "Refrigerator", "Mumbai", domain.RequirementStatusOpen, now),
		requirementAt("r2", "b1", "Television", "Mumbai", domain.RequirementStatusOpen, now.Add(-time.Minute)),
	}

	visible := VisibleRequirements(all, buyer, "Fridge", "")
	require.Len(t, visible, 1)
	assert.Equal(t, "r1", visible[0].ID)
}

func TestVisibleRequirementsDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	all := []domain.ProductRequirement{
		requirementAt("r1", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, now.Add(-time.Hour)),
		requirementAt("r2", "b1", "TV", "Mumbai", domain.RequirementStatusOpen, now),
	}

	_ = VisibleRequirements(all, nil, CategoryAll, "Mumbai")

	assert.Equal(t, "r1", all[0].ID, "input order must be untouched")
	assert.Equal(t, "r2", all[1].ID)
}
