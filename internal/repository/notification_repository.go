package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// NotificationRepository persists the per-recipient notification log.
// Recipients are keyed by the tagged (kind, value) pair so buyer user ids
// and vendor names never collide.
type NotificationRepository interface {
	Add(ctx context.Context, notification *domain.AppNotification) error
	ListByRecipient(ctx context.Context, recipient domain.RecipientID) ([]domain.AppNotification, error)
	MarkRead(ctx context.Context, id string, recipient domain.RecipientID) error
	ClearForRecipient(ctx context.Context, recipient domain.RecipientID) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Add(ctx context.Context, n *domain.AppNotification) error {
	const query = `
        INSERT INTO notifications (recipient_kind, recipient_value, message, type, read, related_request_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		n.Recipient.Kind,
		n.Recipient.Value,
		n.Message,
		n.Type,
		n.Read,
		n.RelatedRequestID,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipient domain.RecipientID) ([]domain.AppNotification, error) {
	const query = `
        SELECT id, recipient_kind, recipient_value, message, type, read, related_request_id, created_at
        FROM notifications
        WHERE recipient_kind=$1 AND recipient_value=$2
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, recipient.Kind, recipient.Value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AppNotification
	for rows.Next() {
		var n domain.AppNotification
		if err := rows.Scan(
			&n.ID,
			&n.Recipient.Kind,
			&n.Recipient.Value,
			&n.Message,
			&n.Type,
			&n.Read,
			&n.RelatedRequestID,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkRead flips the read flag; already-read entries match and stay read, so
// repeated calls are harmless.
func (r *notificationRepository) MarkRead(ctx context.Context, id string, recipient domain.RecipientID) error {
	const query = `
        UPDATE notifications SET read=TRUE
        WHERE id=$1 AND recipient_kind=$2 AND recipient_value=$3`
	_, err := r.pool.Exec(ctx, query, id, recipient.Kind, recipient.Value)
	return err
}

func (r *notificationRepository) ClearForRecipient(ctx context.Context, recipient domain.RecipientID) error {
	const query = `DELETE FROM notifications WHERE recipient_kind=$1 AND recipient_value=$2`
	_, err := r.pool.Exec(ctx, query, recipient.Kind, recipient.Value)
	return err
}
