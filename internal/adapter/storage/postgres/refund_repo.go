package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-sim/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// RefundRepo implements ports.RefundRepository.
type RefundRepo struct {
	pool Pool
}

// NewRefundRepo creates a new RefundRepo.
func NewRefundRepo(pool Pool) *RefundRepo {
	return &RefundRepo{pool: pool}
}

// Create inserts a new refund in its initial pending state.
func (r *RefundRepo) Create(ctx context.Context, rf *domain.Refund) error {
	query := `INSERT INTO refunds (id, payment_id, merchant_id, amount, reason, status, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rf.ID, rf.PaymentID, rf.MerchantID, rf.Amount,
		rf.Reason, rf.Status, rf.CreatedAt, rf.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refund: %w", err)
	}
	return nil
}

// GetByID fetches a refund by its id.
func (r *RefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	query := `SELECT id, payment_id, merchant_id, amount, reason, status, created_at, processed_at
		FROM refunds WHERE id = $1`

	rf := &domain.Refund{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rf.ID, &rf.PaymentID, &rf.MerchantID, &rf.Amount,
		&rf.Reason, &rf.Status, &rf.CreatedAt, &rf.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refund by id: %w", err)
	}
	return rf, nil
}

// Update persists the current state of a refund.
func (r *RefundRepo) Update(ctx context.Context, rf *domain.Refund) error {
	query := `UPDATE refunds SET status=$1, processed_at=$2 WHERE id=$3`
	_, err := r.pool.Exec(ctx, query, rf.Status, rf.ProcessedAt, rf.ID)
	if err != nil {
		return fmt.Errorf("update refund: %w", err)
	}
	return nil
}

// ListByPaymentID returns all refunds recorded against a payment, oldest
// first. Used to enforce the cumulative refund cap.
func (r *RefundRepo) ListByPaymentID(ctx context.Context, paymentID string) ([]domain.Refund, error) {
	query := `SELECT id, payment_id, merchant_id, amount, reason, status, created_at, processed_at
		FROM refunds WHERE payment_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list refunds by payment: %w", err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		var rf domain.Refund
		if err := rows.Scan(
			&rf.ID, &rf.PaymentID, &rf.MerchantID, &rf.Amount,
			&rf.Reason, &rf.Status, &rf.CreatedAt, &rf.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("scan refund: %w", err)
		}
		refunds = append(refunds, rf)
	}
	return refunds, rows.Err()
}
