package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashingale116-sys/mydeal/internal/config"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/store"
)

func newIdentityService() (*IdentityService, *store.MarketStore) {
	marketStore := store.NewMarketStore()
	cfg := config.AuthConfig{JWTSecret: "test-secret", SessionTokenTTLMinutes: 60}
	return NewIdentityService(cfg, marketStore.Users()), marketStore
}

func TestCreateSessionBuyer(t *testing.T) {
	svc, _ := newIdentityService()

	user, token, exp, err := svc.CreateSession(context.Background(), SessionInput{
		Role: domain.RoleBuyer,
		Name: "Ravi",
		City: "Mumbai",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleBuyer, user.Role)
	assert.Empty(t, user.VendorName)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleBuyer, claims.Role)
}

func TestCreateSessionSeller(t *testing.T) {
	svc, marketStore := newIdentityService()

	user, _, _, err := svc.CreateSession(context.Background(), SessionInput{
		Role:       domain.RoleSeller,
		Name:       "Asha",
		City:       "Mumbai",
		VendorName: "Sharma Electronics",
	})
	require.NoError(t, err)
	assert.True(t, user.CanBid())

	stored, err := marketStore.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharma Electronics", stored.VendorName)
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _ := newIdentityService()

	tests := []struct {
		name  string
		input SessionInput
	}{
		{"empty name", SessionInput{Role: domain.RoleBuyer, City: "Mumbai"}},
		{"unknown role", SessionInput{Role: domain.Role("ADMIN"), Name: "X"}},
		{"seller without city", SessionInput{Role: domain.RoleSeller, Name: "X", VendorName: "Sharma Electronics"}},
		{"seller without vendor", SessionInput{Role: domain.RoleSeller, Name: "X", City: "Mumbai"}},
		{"unknown city", SessionInput{Role: domain.RoleSeller, Name: "X", City: "Atlantis", VendorName: "Sharma Electronics"}},
		{"vendor not in city", SessionInput{Role: domain.RoleSeller, Name: "X", City: "Delhi", VendorName: "Sharma Electronics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.CreateSession(context.Background(), tt.input)
			assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		})
	}
}
