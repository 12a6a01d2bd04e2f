package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/events"
	"github.com/avinashingale116-sys/mydeal/internal/store"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

type marketFixture struct {
	market        *MarketService
	notifications *store.NotificationStore
	buyer         *domain.User
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()

	marketStore := store.NewMarketStore()
	notificationStore := store.NewNotificationStore()
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := NewNotificationService(notificationStore, dispatcher, zap.NewNop())
	notificationService.RegisterHandlers()

	market := NewMarketService(MarketDependencies{
		RequirementRepo: marketStore.Requirements(),
		Dispatcher:      dispatcher,
	})

	return &marketFixture{
		market:        market,
		notifications: notificationStore,
		buyer:         &domain.User{ID: "buyer-1", Name: "Ravi", Role: domain.RoleBuyer, City: "Mumbai"},
	}
}

func seller(id, vendorName string) *domain.User {
	return &domain.User{ID: id, Name: id, Role: domain.RoleSeller, City: "Mumbai", VendorName: vendorName}
}

func (f *marketFixture) newRequirement(t *testing.T) *domain.ProductRequirement {
	t.Helper()
	req, err := f.market.CreateRequirement(context.Background(), f.buyer, RequirementCreateInput{
		Title:          "LED TV 43 inch",
		Category:       "Television",
		EstimatedPrice: domain.PriceRange{Min: 35000, Max: 50000},
		Location:       "Mumbai",
	})
	require.NoError(t, err)
	return req
}

func (f *marketFixture) vendorNotifications(t *testing.T, vendorName string) []domain.AppNotification {
	t.Helper()
	entries, err := f.notifications.ListByRecipient(context.Background(), domain.VendorRecipient(vendorName))
	require.NoError(t, err)
	return entries
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	return de.Code
}

func TestCreateRequirementValidation(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RequirementCreateInput
	}{
		{"missing title", RequirementCreateInput{Category: "TV", Location: "Mumbai", EstimatedPrice: domain.PriceRange{Min: 1, Max: 2}}},
		{"missing location", RequirementCreateInput{Title: "TV", Category: "TV", EstimatedPrice: domain.PriceRange{Min: 1, Max: 2}}},
		{"inverted price range", RequirementCreateInput{Title: "TV", Category: "TV", Location: "Mumbai", EstimatedPrice: domain.PriceRange{Min: 5, Max: 2}}},
		{"non-positive price", RequirementCreateInput{Title: "TV", Category: "TV", Location: "Mumbai", EstimatedPrice: domain.PriceRange{Min: 0, Max: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.market.CreateRequirement(ctx, f.buyer, tt.input)
			assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		})
	}

	_, err := f.market.CreateRequirement(ctx, seller("s1", "Sharma Electronics"), RequirementCreateInput{
		Title: "TV", Category: "TV", Location: "Mumbai", EstimatedPrice: domain.PriceRange{Min: 1, Max: 2},
	})
	assert.Equal(t, "FORBIDDEN", domainCode(t, err), "sellers cannot post requirements")
}

func TestPlaceBidPreconditions(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	tests := []struct {
		name     string
		seller   *domain.User
		input    BidInput
		wantCode string
	}{
		{"empty vendor identity", &domain.User{ID: "s0", Role: domain.RoleSeller, City: "Mumbai"}, BidInput{Amount: 1000, DeliveryDays: 2}, "VALIDATION_FAILED"},
		{"zero amount", seller("s1", "Sharma Electronics"), BidInput{Amount: 0, DeliveryDays: 2}, "VALIDATION_FAILED"},
		{"negative amount", seller("s1", "Sharma Electronics"), BidInput{Amount: -5, DeliveryDays: 2}, "VALIDATION_FAILED"},
		{"zero delivery days", seller("s1", "Sharma Electronics"), BidInput{Amount: 1000, DeliveryDays: 0}, "VALIDATION_FAILED"},
		{"buyer cannot bid", f.buyer, BidInput{Amount: 1000, DeliveryDays: 2}, "FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.market.PlaceBid(ctx, tt.seller, req.ID, tt.input)
			assert.Equal(t, tt.wantCode, domainCode(t, err))
		})
	}

	fresh, err := f.market.GetRequirement(ctx, f.buyer, "", req.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Bids, "rejected bids must not mutate the store")
}

func TestPlaceBidDuplicateVendorRejected(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)
	vendor := seller("s1", "Sharma Electronics")

	_, err := f.market.PlaceBid(ctx, vendor, req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)

	_, err = f.market.PlaceBid(ctx, vendor, req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	fresh, err := f.market.GetRequirement(ctx, f.buyer, "", req.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Bids, 1, "identical re-submission leaves exactly one bid")
}

func TestPlaceBidCompetitorWarnings(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	_, err := f.market.PlaceBid(ctx, seller("sA", "Sharma Electronics"), req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)
	_, err = f.market.PlaceBid(ctx, seller("sB", "Patel Appliances"), req.ID, BidInput{Amount: 44000, DeliveryDays: 2})
	require.NoError(t, err)
	_, err = f.market.PlaceBid(ctx, seller("sC", "Metro Gadgets"), req.ID, BidInput{Amount: 42000, DeliveryDays: 4})
	require.NoError(t, err)

	// A and B each got warned once about C's 42000; C got nothing for its
	// own bid; the first bid warned nobody.
	aEntries := f.vendorNotifications(t, "Sharma Electronics")
	require.Len(t, aEntries, 2)
	assert.Equal(t, domain.NotificationWarning, aEntries[0].Type)
	assert.Contains(t, aEntries[0].Message, "42000")
	assert.Equal(t, req.ID, aEntries[0].RelatedRequestID)

	bEntries := f.vendorNotifications(t, "Patel Appliances")
	require.Len(t, bEntries, 1)
	assert.Contains(t, bEntries[0].Message, "42000")

	cEntries := f.vendorNotifications(t, "Metro Gadgets")
	assert.Empty(t, cEntries, "the bidder is never warned about its own bid")

	buyerEntries, err := f.notifications.ListByRecipient(ctx, domain.BuyerRecipient(f.buyer.ID))
	require.NoError(t, err)
	assert.Empty(t, buyerEntries, "buyers are not notified on bid placement")
}

func TestAcceptFlow(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	_, err := f.market.PlaceBid(ctx, seller("sA", "Sharma Electronics"), req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)
	bidB, err := f.market.PlaceBid(ctx, seller("sB", "Patel Appliances"), req.ID, BidInput{Amount: 44000, DeliveryDays: 2})
	require.NoError(t, err)
	_, err = f.market.PlaceBid(ctx, seller("sC", "Metro Gadgets"), req.ID, BidInput{Amount: 42000, DeliveryDays: 4})
	require.NoError(t, err)

	warningsBefore := len(f.vendorNotifications(t, "Patel Appliances"))

	// Selection alone is not observable: still OPEN, no notifications.
	_, err = f.market.SelectBid(ctx, f.buyer, req.ID, bidB.ID)
	require.NoError(t, err)

	stillOpen, err := f.market.GetRequirement(ctx, f.buyer, "", req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequirementStatusOpen, stillOpen.Status)
	assert.Empty(t, stillOpen.WinningBidID)
	assert.Len(t, f.vendorNotifications(t, "Patel Appliances"), warningsBefore)

	closed, err := f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethodCOD)
	require.NoError(t, err)
	assert.Equal(t, domain.RequirementStatusClosed, closed.Status)
	assert.Equal(t, bidB.ID, closed.WinningBidID)
	assert.Equal(t, domain.PaymentMethodCOD, closed.PaymentMethod)

	// Winner gets exactly one success notification; losers get nothing new.
	bEntries := f.vendorNotifications(t, "Patel Appliances")
	require.Len(t, bEntries, warningsBefore+1)
	assert.Equal(t, domain.NotificationSuccess, bEntries[0].Type)
	assert.Contains(t, bEntries[0].Message, "44000")

	for _, vendor := range []string{"Sharma Electronics", "Metro Gadgets"} {
		for _, entry := range f.vendorNotifications(t, vendor) {
			assert.NotEqual(t, domain.NotificationSuccess, entry.Type, "losing vendors are not notified on close")
		}
	}
}

func TestConfirmPaymentGuards(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	bid, err := f.market.PlaceBid(ctx, seller("sA", "Sharma Electronics"), req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)

	// Confirming without a prior selection is a conflict.
	_, err = f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethodCOD)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	_, err = f.market.SelectBid(ctx, f.buyer, req.ID, bid.ID)
	require.NoError(t, err)

	// Unknown payment method is rejected before any mutation.
	_, err = f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethod("CHEQUE"))
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	closed, err := f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethodUPI)
	require.NoError(t, err)

	// Second confirmation is rejected and changes nothing.
	_, err = f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethodCOD)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	fresh, err := f.market.GetRequirement(ctx, f.buyer, "", req.ID)
	require.NoError(t, err)
	assert.Equal(t, closed.WinningBidID, fresh.WinningBidID)
	assert.Equal(t, domain.PaymentMethodUPI, fresh.PaymentMethod)
}

func TestSelectBidGuards(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	bid, err := f.market.PlaceBid(ctx, seller("sA", "Sharma Electronics"), req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)

	otherBuyer := &domain.User{ID: "buyer-2", Role: domain.RoleBuyer}
	_, err = f.market.SelectBid(ctx, otherBuyer, req.ID, bid.ID)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	_, err = f.market.SelectBid(ctx, f.buyer, req.ID, "missing-bid")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestBidAfterCloseRejected(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	bid, err := f.market.PlaceBid(ctx, seller("sA", "Sharma Electronics"), req.ID, BidInput{Amount: 43500, DeliveryDays: 3})
	require.NoError(t, err)
	_, err = f.market.SelectBid(ctx, f.buyer, req.ID, bid.ID)
	require.NoError(t, err)
	_, err = f.market.ConfirmPayment(ctx, f.buyer, req.ID, domain.PaymentMethodCOD)
	require.NoError(t, err)

	_, err = f.market.PlaceBid(ctx, seller("sB", "Patel Appliances"), req.ID, BidInput{Amount: 40000, DeliveryDays: 2})
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestListRequirementsUsesVisibility(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	req := f.newRequirement(t)

	// Anonymous viewer in the requirement's city sees it; elsewhere not.
	visible, err := f.market.ListRequirements(ctx, nil, "All", "Mumbai")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, req.ID, visible[0].ID)

	visible, err = f.market.ListRequirements(ctx, nil, "All", "Delhi")
	require.NoError(t, err)
	assert.Empty(t, visible)

	// Synonym filter applies.
	visible, err = f.market.ListRequirements(ctx, nil, "TV", "Mumbai")
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	visible, err = f.market.ListRequirements(ctx, nil, "Fridge", "Mumbai")
	require.NoError(t, err)
	assert.Empty(t, visible)
}
