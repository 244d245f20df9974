package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-sim/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Create inserts a new payment in its initial pending state.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (id, merchant_id, order_id, amount, currency, method, vpa, card_last4,
		status, error_code, error_description, captured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.MerchantID, p.OrderID, p.Amount, p.Currency,
		p.Method, p.VPA, p.CardLast4, p.Status,
		p.ErrorCode, p.ErrorDescription, p.Captured,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by its id.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT id, merchant_id, order_id, amount, currency, method, vpa, card_last4,
		status, error_code, error_description, captured, created_at, updated_at
		FROM payments WHERE id = $1`

	p := &domain.Payment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.MerchantID, &p.OrderID, &p.Amount, &p.Currency,
		&p.Method, &p.VPA, &p.CardLast4, &p.Status,
		&p.ErrorCode, &p.ErrorDescription, &p.Captured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by id: %w", err)
	}
	return p, nil
}

// Update persists the current state of a payment. Workers call this after
// re-fetching, so the write reflects the freshest entity state.
func (r *PaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments
		SET status=$1, error_code=$2, error_description=$3, captured=$4, updated_at=$5
		WHERE id=$6`
	_, err := r.pool.Exec(ctx, query,
		p.Status, p.ErrorCode, p.ErrorDescription, p.Captured, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}
