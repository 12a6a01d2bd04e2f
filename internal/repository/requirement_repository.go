package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avinashingale116-sys/mydeal/internal/domain"
)

// RequirementFilter captures coarse listing parameters. Role-based
// visibility is computed by the visibility engine, not the repository.
type RequirementFilter struct {
	BuyerID  *string
	Status   *domain.RequirementStatus
	Location *string
	Limit    int
	Offset   int
}

// RequirementRepository encapsulates requirement and bid persistence.
// Implementations must enforce two invariants at the mutation point: bids
// append only while the requirement is OPEN with at most one bid per vendor,
// and the CLOSED transition commits exactly once.
type RequirementRepository interface {
	Create(ctx context.Context, req *domain.ProductRequirement) error
	GetByID(ctx context.Context, id string) (*domain.ProductRequirement, error)
	List(ctx context.Context, filter RequirementFilter) ([]domain.ProductRequirement, error)
	AddBid(ctx context.Context, requirementID string, bid *domain.Bid) error
	Close(ctx context.Context, requirementID, winningBidID string, method domain.PaymentMethod) error
}

type requirementRepository struct {
	pool *pgxpool.Pool
}

// NewRequirementRepository returns a Postgres-backed implementation.
func NewRequirementRepository(pool *pgxpool.Pool) RequirementRepository {
	return &requirementRepository{pool: pool}
}

func (r *requirementRepository) Create(ctx context.Context, req *domain.ProductRequirement) error {
	const query = `
        INSERT INTO requirements (buyer_id, title, category, specs, price_min, price_max, location, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		req.BuyerID,
		req.Title,
		req.Category,
		req.Specs,
		req.EstimatedPrice.Min,
		req.EstimatedPrice.Max,
		req.Location,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *requirementRepository) GetByID(ctx context.Context, id string) (*domain.ProductRequirement, error) {
	const query = `
        SELECT id, buyer_id, title, category, specs, price_min, price_max, location,
               status, COALESCE(winning_bid_id::text, ''), COALESCE(payment_method, ''), created_at
        FROM requirements WHERE id=$1`

	var req domain.ProductRequirement
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.BuyerID,
		&req.Title,
		&req.Category,
		&req.Specs,
		&req.EstimatedPrice.Min,
		&req.EstimatedPrice.Max,
		&req.Location,
		&req.Status,
		&req.WinningBidID,
		&req.PaymentMethod,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}
	bids, err := r.bidsFor(ctx, []string{req.ID})
	if err != nil {
		return nil, err
	}
	req.Bids = bids[req.ID]
	return &req, nil
}

func (r *requirementRepository) List(ctx context.Context, filter RequirementFilter) ([]domain.ProductRequirement, error) {
	base := `SELECT id, buyer_id, title, category, specs, price_min, price_max, location,
                    status, COALESCE(winning_bid_id::text, ''), COALESCE(payment_method, ''), created_at
             FROM requirements`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BuyerID != nil {
		args = append(args, *filter.BuyerID)
		clauses = append(clauses, fmt.Sprintf("buyer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		clauses = append(clauses, fmt.Sprintf("location=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductRequirement
	ids := []string{}
	for rows.Next() {
		var req domain.ProductRequirement
		if err := rows.Scan(
			&req.ID,
			&req.BuyerID,
			&req.Title,
			&req.Category,
			&req.Specs,
			&req.EstimatedPrice.Min,
			&req.EstimatedPrice.Max,
			&req.Location,
			&req.Status,
			&req.WinningBidID,
			&req.PaymentMethod,
			&req.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
		ids = append(ids, req.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bids, err := r.bidsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Bids = bids[result[i].ID]
	}
	return result, nil
}

// AddBid appends a bid guarded by requirement status; the unique index on
// (requirement_id, seller_name) rejects a second bid from the same vendor.
func (r *requirementRepository) AddBid(ctx context.Context, requirementID string, bid *domain.Bid) error {
	const query = `
        INSERT INTO bids (requirement_id, seller_name, amount, delivery_days, notes)
        SELECT $1,$2,$3,$4,$5
        WHERE EXISTS (SELECT 1 FROM requirements WHERE id=$1 AND status='OPEN')
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		requirementID,
		bid.SellerName,
		bid.Amount,
		bid.DeliveryDays,
		bid.Notes,
	).Scan(&bid.ID, &bid.CreatedAt); err != nil {
		return err
	}
	bid.RequirementID = requirementID
	return nil
}

// Close commits the single OPEN→CLOSED transition; a second attempt matches
// zero rows.
func (r *requirementRepository) Close(ctx context.Context, requirementID, winningBidID string, method domain.PaymentMethod) error {
	const query = `
        UPDATE requirements SET status='CLOSED', winning_bid_id=$1, payment_method=$2
        WHERE id=$3 AND status='OPEN'`
	cmd, err := r.pool.Exec(ctx, query, winningBidID, method, requirementID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requirementRepository) bidsFor(ctx context.Context, requirementIDs []string) (map[string][]domain.Bid, error) {
	result := make(map[string][]domain.Bid, len(requirementIDs))
	if len(requirementIDs) == 0 {
		return result, nil
	}
	const query = `
        SELECT id, requirement_id, seller_name, amount, delivery_days, notes, created_at
        FROM bids WHERE requirement_id = ANY($1) ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, requirementIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bid domain.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.RequirementID,
			&bid.SellerName,
			&bid.Amount,
			&bid.DeliveryDays,
			&bid.Notes,
			&bid.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[bid.RequirementID] = append(result[bid.RequirementID], bid)
	}
	return result, rows.Err()
}
