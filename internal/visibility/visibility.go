package visibility

import (
	"sort"
	"strings"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// CategoryAll passes every category through the filter.
const CategoryAll = "All"

// synonyms is the fixed expansion table for the fuzzy category match. The
// pairs are deliberate product behavior, not a tie-break heuristic; each
// filter term also matches by lowercase substring.
var synonyms = map[string][]string{
	"fridge":          {"refrigerator"},
	"refrigerator":    {"fridge"},
	"ac":              {"air conditioner"},
	"air conditioner": {"ac"},
	"tv":              {"television"},
	"television":      {"tv"},
	"mobile":          {"phone"},
	"phone":           {"mobile"},
}

// VisibleRequirements computes the subset and order of requirements a viewer
// may see. Pure: never mutates its inputs. Category filter applies first,
// then role-based visibility, then a strict newest-first sort on CreatedAt.
// A nil viewer is the anonymous case, scoped to OPEN requirements in
// selectedCity. Once a seller is authenticated their own city is
// authoritative, not the global selector.
func VisibleRequirements(all []domain.ProductRequirement, viewer *domain.User, categoryFilter, selectedCity string) []domain.ProductRequirement {
	visible := make([]domain.ProductRequirement, 0, len(all))
	for _, req := range all {
		if !MatchesCategory(req.Category, categoryFilter) {
			continue
		}
		if !visibleTo(&req, viewer, selectedCity) {
			continue
		}
		visible = append(visible, req)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible
}

func visibleTo(req *domain.ProductRequirement, viewer *domain.User, selectedCity string) bool {
	if viewer == nil {
		return req.Status == domain.RequirementStatusOpen && req.Location == selectedCity
	}

	switch viewer.Role {
	case domain.RoleBuyer:
		// A buyer always sees their own full history.
		return req.BuyerID == viewer.ID
	case domain.RoleSeller:
		if req.Status == domain.RequirementStatusOpen {
			return req.Location == viewer.City
		}
		// Sellers retain visibility of closed deals they won, even outside
		// their city.
		winning := req.WinningBid()
		return winning != nil && winning.SellerName == viewer.VendorName
	}
	return false
}

// MatchesCategory implements the fuzzy category filter: "All" passes
// everything; otherwise the filter matches on lowercase substring with the
// fixed synonym expansion applied in both directions.
func MatchesCategory(category, filter string) bool {
	if filter == "" || filter == CategoryAll {
		return true
	}
	cat := strings.ToLower(strings.TrimSpace(category))
	term := strings.ToLower(strings.TrimSpace(filter))

	if strings.Contains(cat, term) {
		return true
	}
	for _, alias := range synonyms[term] {
		if strings.Contains(cat, alias) {
			return true
		}
	}
	return false
}
