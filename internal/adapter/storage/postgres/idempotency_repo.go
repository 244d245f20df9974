package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository on the
// idempotency_keys table, keyed by (key, merchant_id).
type IdempotencyRepo struct {
	pool Pool
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

// Get fetches an idempotency entry by its composite key.
func (r *IdempotencyRepo) Get(ctx context.Context, merchantID uuid.UUID, key string) (*domain.IdempotencyEntry, error) {
	query := `SELECT key, merchant_id, response, created_at, expires_at
		FROM idempotency_keys WHERE key = $1 AND merchant_id = $2`

	e := &domain.IdempotencyEntry{}
	err := r.pool.QueryRow(ctx, query, key, merchantID).Scan(
		&e.Key, &e.MerchantID, &e.Response, &e.CreatedAt, &e.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency entry: %w", err)
	}
	return e, nil
}

// Save upserts an entry; the latest save wins for the composite key.
func (r *IdempotencyRepo) Save(ctx context.Context, e *domain.IdempotencyEntry) error {
	query := `INSERT INTO idempotency_keys (key, merchant_id, response, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key, merchant_id)
		DO UPDATE SET response = EXCLUDED.response, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`

	_, err := r.pool.Exec(ctx, query, e.Key, e.MerchantID, e.Response, e.CreatedAt, e.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save idempotency entry: %w", err)
	}
	return nil
}

// Delete removes an entry, used for lazy eviction of expired or corrupt
// rows.
func (r *IdempotencyRepo) Delete(ctx context.Context, merchantID uuid.UUID, key string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM idempotency_keys WHERE key = $1 AND merchant_id = $2`, key, merchantID)
	if err != nil {
		return fmt.Errorf("delete idempotency entry: %w", err)
	}
	return nil
}
