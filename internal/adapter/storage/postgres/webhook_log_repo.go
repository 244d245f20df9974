package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookLogRepo implements ports.WebhookLogRepository.
type WebhookLogRepo struct {
	pool Pool
}

// NewWebhookLogRepo creates a new WebhookLogRepo.
func NewWebhookLogRepo(pool Pool) *WebhookLogRepo {
	return &WebhookLogRepo{pool: pool}
}

// Create inserts a new webhook delivery record.
func (r *WebhookLogRepo) Create(ctx context.Context, w *domain.WebhookLog) error {
	query := `INSERT INTO webhook_logs (id, merchant_id, event, payload, status, attempts,
		last_attempt_at, next_retry_at, response_code, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.MerchantID, w.Event, w.Payload, w.Status, w.Attempts,
		w.LastAttemptAt, w.NextRetryAt, w.ResponseCode, w.ResponseBody, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook log: %w", err)
	}
	return nil
}

// GetByID fetches a delivery record by its UUID.
func (r *WebhookLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookLog, error) {
	query := `SELECT id, merchant_id, event, payload, status, attempts,
		last_attempt_at, next_retry_at, response_code, response_body, created_at
		FROM webhook_logs WHERE id = $1`

	w := &domain.WebhookLog{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.MerchantID, &w.Event, &w.Payload, &w.Status, &w.Attempts,
		&w.LastAttemptAt, &w.NextRetryAt, &w.ResponseCode, &w.ResponseBody, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook log by id: %w", err)
	}
	return w, nil
}

// Update persists the retry state after a delivery attempt or a manual
// reset.
func (r *WebhookLogRepo) Update(ctx context.Context, w *domain.WebhookLog) error {
	query := `UPDATE webhook_logs
		SET status=$1, attempts=$2, last_attempt_at=$3, next_retry_at=$4, response_code=$5, response_body=$6
		WHERE id=$7`
	_, err := r.pool.Exec(ctx, query,
		w.Status, w.Attempts, w.LastAttemptAt, w.NextRetryAt,
		w.ResponseCode, w.ResponseBody, w.ID,
	)
	if err != nil {
		return fmt.Errorf("update webhook log: %w", err)
	}
	return nil
}

// ListByMerchant returns a page of delivery records for a merchant, newest
// first, plus the total count.
func (r *WebhookLogRepo) ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]domain.WebhookLog, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM webhook_logs WHERE merchant_id = $1`, merchantID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count webhook logs: %w", err)
	}

	query := `SELECT id, merchant_id, event, payload, status, attempts,
		last_attempt_at, next_retry_at, response_code, response_body, created_at
		FROM webhook_logs WHERE merchant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, merchantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list webhook logs: %w", err)
	}
	defer rows.Close()

	logs, err := scanWebhookLogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ListDue returns pending records whose scheduled retry time has passed.
// This feeds the due-retry sweep that recovers deliveries lost between
// enqueue and consumption.
func (r *WebhookLogRepo) ListDue(ctx context.Context, now time.Time) ([]domain.WebhookLog, error) {
	query := `SELECT id, merchant_id, event, payload, status, attempts,
		last_attempt_at, next_retry_at, response_code, response_body, created_at
		FROM webhook_logs
		WHERE status = $1 AND next_retry_at IS NOT NULL AND next_retry_at <= $2
		ORDER BY next_retry_at ASC`

	rows, err := r.pool.Query(ctx, query, domain.WebhookStatusPending, now)
	if err != nil {
		return nil, fmt.Errorf("list due webhook logs: %w", err)
	}
	defer rows.Close()

	return scanWebhookLogs(rows)
}

func scanWebhookLogs(rows pgx.Rows) ([]domain.WebhookLog, error) {
	var logs []domain.WebhookLog
	for rows.Next() {
		var w domain.WebhookLog
		if err := rows.Scan(
			&w.ID, &w.MerchantID, &w.Event, &w.Payload, &w.Status, &w.Attempts,
			&w.LastAttemptAt, &w.NextRetryAt, &w.ResponseCode, &w.ResponseBody, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan webhook log: %w", err)
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}
