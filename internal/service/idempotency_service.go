package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IdempotencyServiceImpl implements ports.IdempotencyService as two layers:
// a Redis fast path in front of the authoritative Postgres store. The
// window between lookup and save is intentionally unguarded; concurrent
// first requests race and the last save wins.
type IdempotencyServiceImpl struct {
	repo  ports.IdempotencyRepository
	cache ports.IdempotencyCache
	log   zerolog.Logger
}

// NewIdempotencyService creates a new IdempotencyServiceImpl.
func NewIdempotencyService(repo ports.IdempotencyRepository, cache ports.IdempotencyCache, log zerolog.Logger) *IdempotencyServiceImpl {
	return &IdempotencyServiceImpl{repo: repo, cache: cache, log: log}
}

func cacheKey(merchantID uuid.UUID, key string) string {
	return merchantID.String() + ":" + key
}

// Lookup returns the cached response for (merchant, key), or nil on miss.
// Expired and corrupt entries are evicted lazily and reported as misses.
func (s *IdempotencyServiceImpl) Lookup(ctx context.Context, merchantID uuid.UUID, key string) (json.RawMessage, error) {
	ck := cacheKey(merchantID, key)

	cached, err := s.cache.Get(ctx, ck)
	if err != nil {
		// Cache trouble degrades to the durable store.
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache read failed")
	}
	if cached != nil {
		if json.Valid(cached) {
			return cached, nil
		}
		s.evict(ctx, merchantID, key)
		return nil, nil
	}

	entry, err := s.repo.Get(ctx, merchantID, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get idempotency entry: %w", err))
	}
	if entry == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	if entry.Expired(now) || !json.Valid(entry.Response) {
		s.evict(ctx, merchantID, key)
		return nil, nil
	}

	// Refill the fast path for the remaining lifetime.
	if ttl := entry.ExpiresAt.Sub(now); ttl > 0 {
		if err := s.cache.Set(ctx, ck, entry.Response, ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache refill failed")
		}
	}

	return entry.Response, nil
}

// Save stores the response under (merchant, key) with the fixed TTL,
// overwriting any previous entry.
func (s *IdempotencyServiceImpl) Save(ctx context.Context, merchantID uuid.UUID, key string, response any) error {
	body, err := json.Marshal(response)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal idempotency response: %w", err))
	}

	now := time.Now().UTC()
	entry := &domain.IdempotencyEntry{
		Key:        key,
		MerchantID: merchantID,
		Response:   body,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.IdempotencyTTL),
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return apperror.InternalError(fmt.Errorf("save idempotency entry: %w", err))
	}

	if err := s.cache.Set(ctx, cacheKey(merchantID, key), body, domain.IdempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache write failed")
	}

	return nil
}

func (s *IdempotencyServiceImpl) evict(ctx context.Context, merchantID uuid.UUID, key string) {
	if err := s.repo.Delete(ctx, merchantID, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency evict failed")
	}
	if err := s.cache.Delete(ctx, cacheKey(merchantID, key)); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache evict failed")
	}
}
