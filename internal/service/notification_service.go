package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/events"
	"github.com/avinashingale116-sys/mydeal/internal/repository"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// NotificationService is the single writer of the notification log. It
// subscribes to domain events and fans them out to the tagged recipients;
// the read path resolves recipients with the same mapping.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBidPlaced, n.handleBidPlaced)
	n.dispatcher.Subscribe(events.EventBidAccepted, n.handleBidAccepted)
}

// handleBidPlaced warns every distinct competing vendor about the new
// amount. The bidder and the requirement's buyer receive nothing.
func (n *NotificationService) handleBidPlaced(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BidPlacedPayload)
	if !ok {
		n.logger.Warn("unexpected bid_placed payload", zap.String("event_id", event.ID))
		return nil
	}
	for _, vendor := range payload.Competitors {
		notification := &domain.AppNotification{
			Recipient:        domain.VendorRecipient(vendor),
			Message:          fmt.Sprintf("New competing bid of ₹%d on %q", payload.Amount, payload.Title),
			Type:             domain.NotificationWarning,
			RelatedRequestID: event.RequirementID,
		}
		if err := n.notifications.Add(ctx, notification); err != nil {
			n.logger.Error("write competitor notification", zap.Error(err), zap.String("vendor", vendor))
		}
	}
	return nil
}

// handleBidAccepted congratulates the winning vendor. Losing bidders are
// not notified.
func (n *NotificationService) handleBidAccepted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BidAcceptedPayload)
	if !ok {
		n.logger.Warn("unexpected bid_accepted payload", zap.String("event_id", event.ID))
		return nil
	}
	notification := &domain.AppNotification{
		Recipient: domain.VendorRecipient(payload.SellerName),
		Message: fmt.Sprintf("Your bid of ₹%d on %q was accepted, payment via %s",
			payload.Amount, payload.Title, payload.PaymentMethod),
		Type:             domain.NotificationSuccess,
		RelatedRequestID: event.RequirementID,
	}
	if err := n.notifications.Add(ctx, notification); err != nil {
		n.logger.Error("write acceptance notification", zap.Error(err), zap.String("vendor", payload.SellerName))
	}
	return nil
}

// ListForViewer returns the viewer's notifications, newest first.
func (n *NotificationService) ListForViewer(ctx context.Context, viewer *domain.User) ([]domain.AppNotification, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("viewer required")
	}
	result, err := n.notifications.ListByRecipient(ctx, domain.RecipientFor(viewer))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// MarkRead flips one of the viewer's notifications to read; idempotent.
func (n *NotificationService) MarkRead(ctx context.Context, viewer *domain.User, id string) error {
	if viewer == nil {
		return apperrors.NewUnauthorized("viewer required")
	}
	if err := n.notifications.MarkRead(ctx, id, domain.RecipientFor(viewer)); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ClearAll removes the viewer's notifications only, never anyone else's.
func (n *NotificationService) ClearAll(ctx context.Context, viewer *domain.User) error {
	if viewer == nil {
		return apperrors.NewUnauthorized("viewer required")
	}
	if err := n.notifications.ClearForRecipient(ctx, domain.RecipientFor(viewer)); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
