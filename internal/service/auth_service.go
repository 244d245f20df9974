package service

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/idgen"

	"github.com/google/uuid"
)

const (
	apiKeyPrefix = "key_"
	apiKeyLen    = 24
	apiSecretLen = 32
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	merchantRepo ports.MerchantRepository
	hashSvc      ports.HashService
	encSvc       ports.EncryptionService
	tokenSvc     ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	merchantRepo ports.MerchantRepository,
	hashSvc ports.HashService,
	encSvc ports.EncryptionService,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		merchantRepo: merchantRepo,
		hashSvc:      hashSvc,
		encSvc:       encSvc,
		tokenSvc:     tokenSvc,
	}
}

// Register creates a new merchant account. The plaintext api_secret is
// returned once and never stored; only its Argon2id hash is persisted.
func (s *AuthServiceImpl) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	existing, err := s.merchantRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	apiKey := apiKeyPrefix + idgen.RandomKey(apiKeyLen)
	apiSecret := idgen.RandomKey(apiSecretLen)

	secretHash, err := s.hashSvc.Hash(apiSecret)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash api secret: %w", err))
	}

	var webhookSecretEnc *string
	if input.WebhookSecret != nil && *input.WebhookSecret != "" {
		enc, err := s.encSvc.Encrypt(*input.WebhookSecret)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("encrypt webhook secret: %w", err))
		}
		webhookSecretEnc = &enc
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:               uuid.New(),
		Name:             input.Name,
		Email:            input.Email,
		APIKey:           apiKey,
		APISecretHash:    secretHash,
		WebhookURL:       input.WebhookURL,
		WebhookSecretEnc: webhookSecretEnc,
		Status:           domain.MerchantStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create merchant: %w", err))
	}

	return &ports.RegisterResult{
		MerchantID: merchant.ID,
		APIKey:     apiKey,
		APISecret:  apiSecret,
	}, nil
}

// Authenticate resolves the merchant by api key and verifies the secret
// against the stored Argon2id hash.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, apiKey, apiSecret string) (*domain.Merchant, error) {
	merchant, err := s.merchantRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(apiSecret, merchant.APISecretHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify api secret: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !merchant.IsActive() {
		return nil, apperror.ErrMerchantSuspended()
	}

	return merchant, nil
}

// IssueToken exchanges an api key/secret pair for a dashboard JWT.
func (s *AuthServiceImpl) IssueToken(ctx context.Context, apiKey, apiSecret string) (string, time.Time, error) {
	merchant, err := s.Authenticate(ctx, apiKey, apiSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	token, expiry, err := s.tokenSvc.Generate(merchant.ID, merchant.APIKey)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
