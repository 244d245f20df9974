package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// Create inserts a new merchant into the database.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, email, api_key, api_secret_hash, webhook_url, webhook_secret_enc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Name, m.Email, m.APIKey, m.APISecretHash,
		m.WebhookURL, m.WebhookSecretEnc, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID fetches a merchant by its UUID.
func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, name, email, api_key, api_secret_hash, webhook_url, webhook_secret_enc, status, created_at, updated_at
		FROM merchants WHERE id = $1`

	return r.scanMerchant(r.pool.QueryRow(ctx, query, id), "get merchant by id")
}

// GetByAPIKey fetches a merchant by its public API key.
func (r *MerchantRepo) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	query := `SELECT id, name, email, api_key, api_secret_hash, webhook_url, webhook_secret_enc, status, created_at, updated_at
		FROM merchants WHERE api_key = $1`

	return r.scanMerchant(r.pool.QueryRow(ctx, query, apiKey), "get merchant by api_key")
}

// GetByEmail fetches a merchant by email.
func (r *MerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	query := `SELECT id, name, email, api_key, api_secret_hash, webhook_url, webhook_secret_enc, status, created_at, updated_at
		FROM merchants WHERE email = $1`

	return r.scanMerchant(r.pool.QueryRow(ctx, query, email), "get merchant by email")
}

// Update updates a merchant record.
func (r *MerchantRepo) Update(ctx context.Context, m *domain.Merchant) error {
	query := `UPDATE merchants
		SET name=$1, email=$2, webhook_url=$3, webhook_secret_enc=$4, status=$5, updated_at=NOW()
		WHERE id=$6`
	_, err := r.pool.Exec(ctx, query,
		m.Name, m.Email, m.WebhookURL, m.WebhookSecretEnc, m.Status, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update merchant: %w", err)
	}
	return nil
}

func (r *MerchantRepo) scanMerchant(row pgx.Row, op string) (*domain.Merchant, error) {
	m := &domain.Merchant{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.APIKey, &m.APISecretHash,
		&m.WebhookURL, &m.WebhookSecretEnc, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}
