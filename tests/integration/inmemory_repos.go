package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
)

// In-memory repository implementations backing the integration stack. They
// exercise the real HTTP layer, services and workers without PostgreSQL.

// --- Merchants ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[uuid.UUID]*domain.Merchant
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{merchants: make(map[uuid.UUID]*domain.Merchant)}
}

func (r *inMemoryMerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.merchants {
		if existing.Email == m.Email {
			return fmt.Errorf("email already exists")
		}
	}
	cp := *m
	r.merchants[m.ID] = &cp
	return nil
}

func (r *inMemoryMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *inMemoryMerchantRepo) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.APIKey == apiKey {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) Update(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.merchants[m.ID]; !ok {
		return fmt.Errorf("merchant not found")
	}
	cp := *m
	r.merchants[m.ID] = &cp
	return nil
}

// --- Payments ---

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

func newInMemoryPaymentRepo() *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return fmt.Errorf("payment not found")
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

// --- Refunds ---

type inMemoryRefundRepo struct {
	mu      sync.RWMutex
	refunds map[string]*domain.Refund
}

func newInMemoryRefundRepo() *inMemoryRefundRepo {
	return &inMemoryRefundRepo{refunds: make(map[string]*domain.Refund)}
}

func (r *inMemoryRefundRepo) Create(ctx context.Context, rf *domain.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rf
	r.refunds[rf.ID] = &cp
	return nil
}

func (r *inMemoryRefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rf, ok := r.refunds[id]
	if !ok {
		return nil, nil
	}
	cp := *rf
	return &cp, nil
}

func (r *inMemoryRefundRepo) Update(ctx context.Context, rf *domain.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refunds[rf.ID]; !ok {
		return fmt.Errorf("refund not found")
	}
	cp := *rf
	r.refunds[rf.ID] = &cp
	return nil
}

func (r *inMemoryRefundRepo) ListByPaymentID(ctx context.Context, paymentID string) ([]domain.Refund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Refund
	for _, rf := range r.refunds {
		if rf.PaymentID == paymentID {
			result = append(result, *rf)
		}
	}
	return result, nil
}

// --- Webhook logs ---

type inMemoryWebhookLogRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.WebhookLog
}

func newInMemoryWebhookLogRepo() *inMemoryWebhookLogRepo {
	return &inMemoryWebhookLogRepo{records: make(map[uuid.UUID]*domain.WebhookLog)}
}

func (r *inMemoryWebhookLogRepo) Create(ctx context.Context, w *domain.WebhookLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.records[w.ID] = &cp
	return nil
}

func (r *inMemoryWebhookLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWebhookLogRepo) Update(ctx context.Context, w *domain.WebhookLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[w.ID]; !ok {
		return fmt.Errorf("webhook log not found")
	}
	cp := *w
	r.records[w.ID] = &cp
	return nil
}

func (r *inMemoryWebhookLogRepo) ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]domain.WebhookLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WebhookLog
	for _, w := range r.records {
		if w.MerchantID == merchantID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))

	if offset >= len(result) {
		return []domain.WebhookLog{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (r *inMemoryWebhookLogRepo) ListDue(ctx context.Context, now time.Time) ([]domain.WebhookLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.WebhookLog
	for _, w := range r.records {
		if w.Status == domain.WebhookStatusPending && w.NextRetryAt != nil && !w.NextRetryAt.After(now) {
			due = append(due, *w)
		}
	}
	return due, nil
}

// --- Idempotency entries ---

type inMemoryIdempotencyRepo struct {
	mu      sync.RWMutex
	entries map[string]*domain.IdempotencyEntry
}

func newInMemoryIdempotencyRepo() *inMemoryIdempotencyRepo {
	return &inMemoryIdempotencyRepo{entries: make(map[string]*domain.IdempotencyEntry)}
}

func idemKey(merchantID uuid.UUID, key string) string {
	return merchantID.String() + ":" + key
}

func (r *inMemoryIdempotencyRepo) Get(ctx context.Context, merchantID uuid.UUID, key string) (*domain.IdempotencyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[idemKey(merchantID, key)]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *inMemoryIdempotencyRepo) Save(ctx context.Context, entry *domain.IdempotencyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[idemKey(entry.MerchantID, entry.Key)] = &cp
	return nil
}

func (r *inMemoryIdempotencyRepo) Delete(ctx context.Context, merchantID uuid.UUID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, idemKey(merchantID, key))
	return nil
}
