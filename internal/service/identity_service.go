package service

import (
	"context"
	"strings"
	"time"

	"github.com/avinashingale116-sys/mydeal/internal/auth"
	"github.com/avinashingale116-sys/mydeal/internal/config"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/registry"
	"github.com/avinashingale116-sys/mydeal/internal/repository"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// IdentityService is the identity provider: role selection and profile
// fields in, a User record and session token out. Sessions are mock by
// product decision: no credentials are verified. Seller storefronts must
// resolve against the per-city vendor registry.
type IdentityService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// SessionInput describes the role-selection payload.
type SessionInput struct {
	Role       domain.Role
	Name       string
	City       string
	VendorName string
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.AuthConfig, users repository.UserRepository) *IdentityService {
	return &IdentityService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// CreateSession registers the selected identity and issues a session token.
func (s *IdentityService) CreateSession(ctx context.Context, input SessionInput) (*domain.User, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name required", nil)
	}

	user := &domain.User{
		Name: name,
		Role: input.Role,
	}

	switch input.Role {
	case domain.RoleBuyer:
		user.City = strings.TrimSpace(input.City)
	case domain.RoleSeller:
		city := strings.TrimSpace(input.City)
		vendorName := strings.TrimSpace(input.VendorName)
		if city == "" || vendorName == "" {
			return nil, "", time.Time{}, apperrors.NewValidationError("city and vendor_name required for sellers", nil)
		}
		if registry.VendorsIn(city) == nil {
			return nil, "", time.Time{}, apperrors.NewValidationError("unknown city", map[string]any{"city": city})
		}
		if !registry.IsRegistered(city, vendorName) {
			return nil, "", time.Time{}, apperrors.NewValidationError("vendor not registered in city", map[string]any{
				"city":        city,
				"vendor_name": vendorName,
			})
		}
		user.City = city
		user.VendorName = vendorName
	default:
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be BUYER or SELLER", nil)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}
