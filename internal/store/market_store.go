package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/repository"
)

// ErrDuplicateBid rejects a second bid from the same vendor identity on one
// requirement.
var ErrDuplicateBid = errors.New("vendor already has a bid on this requirement")

// MarketStore is the in-memory implementation of the requirement and user
// repositories. It owns the canonical collections: one mutation commits
// before the next is accepted, and readers only ever get deep snapshots.
// Missing rows surface as pgx.ErrNoRows so callers handle one sentinel
// regardless of backend.
type MarketStore struct {
	mu           sync.Mutex
	requirements []*domain.ProductRequirement
	users        map[string]*domain.User
}

// NewMarketStore creates an empty store.
func NewMarketStore() *MarketStore {
	return &MarketStore{users: make(map[string]*domain.User)}
}

// Requirements returns the requirement repository view of the store.
func (s *MarketStore) Requirements() repository.RequirementRepository {
	return (*memRequirementRepo)(s)
}

// Users returns the user repository view of the store.
func (s *MarketStore) Users() repository.UserRepository {
	return (*memUserRepo)(s)
}

type memRequirementRepo MarketStore

func (s *memRequirementRepo) Create(_ context.Context, req *domain.ProductRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	s.requirements = append(s.requirements, req.Clone())
	return nil
}

func (s *memRequirementRepo) GetByID(_ context.Context, id string) (*domain.ProductRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.find(id)
	if req == nil {
		return nil, pgx.ErrNoRows
	}
	return req.Clone(), nil
}

func (s *memRequirementRepo) List(_ context.Context, filter repository.RequirementFilter) ([]domain.ProductRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.ProductRequirement, 0, len(s.requirements))
	for _, req := range s.requirements {
		if filter.BuyerID != nil && req.BuyerID != *filter.BuyerID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.Location != nil && req.Location != *filter.Location {
			continue
		}
		result = append(result, *req.Clone())
	}
	return result, nil
}

// AddBid appends atomically: the status and per-vendor uniqueness checks
// happen under the same lock as the append, so a stale caller-side check
// can never double-apply.
func (s *memRequirementRepo) AddBid(_ context.Context, requirementID string, bid *domain.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.find(requirementID)
	if req == nil || req.Status != domain.RequirementStatusOpen {
		return pgx.ErrNoRows
	}
	if req.BidBySeller(bid.SellerName) != nil {
		return ErrDuplicateBid
	}

	bid.ID = uuid.NewString()
	bid.RequirementID = requirementID
	bid.CreatedAt = time.Now()
	req.Bids = append(req.Bids, *bid)
	return nil
}

func (s *memRequirementRepo) Close(_ context.Context, requirementID, winningBidID string, method domain.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := s.find(requirementID)
	if req == nil || req.Status != domain.RequirementStatusOpen {
		return pgx.ErrNoRows
	}
	req.Status = domain.RequirementStatusClosed
	req.WinningBidID = winningBidID
	req.PaymentMethod = method
	return nil
}

func (s *memRequirementRepo) find(id string) *domain.ProductRequirement {
	for _, req := range s.requirements {
		if req.ID == id {
			return req
		}
	}
	return nil
}

type memUserRepo MarketStore

func (s *memUserRepo) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}
