package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// NotificationStore is the in-memory per-recipient notification log. Add
// prepends, so the default read order is newest-first; ListByRecipient still
// re-sorts by timestamp to stay robust against insertion-order assumptions.
type NotificationStore struct {
	mu      sync.Mutex
	entries []domain.AppNotification
}

// NewNotificationStore creates an empty log.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) Add(_ context.Context, n *domain.AppNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	s.entries = append([]domain.AppNotification{*n}, s.entries...)
	return nil
}

func (s *NotificationStore) ListByRecipient(_ context.Context, recipient domain.RecipientID) ([]domain.AppNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.AppNotification{}
	for _, entry := range s.entries {
		if entry.Recipient == recipient {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// MarkRead flips the read flag for the recipient's own entry; repeated calls
// are harmless and unknown ids are ignored.
func (s *NotificationStore) MarkRead(_ context.Context, id string, recipient domain.RecipientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id && s.entries[i].Recipient == recipient {
			s.entries[i].Read = true
			return nil
		}
	}
	return nil
}

// ClearForRecipient removes every entry for the given recipient identity
// only. The tagged recipient comparison keeps a buyer id and an identical
// vendor-name string apart.
func (s *NotificationStore) ClearForRecipient(_ context.Context, recipient domain.RecipientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, entry := range s.entries {
		if entry.Recipient != recipient {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	return nil
}
