package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_Sign(t *testing.T) {
	svc := NewHMACSignatureService()

	// Known vector: HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	sig := svc.Sign("key", "The quick brown fox jumps over the lazy dog")
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", sig)
}

func TestHMACSignatureService_Sign_Deterministic(t *testing.T) {
	svc := NewHMACSignatureService()

	payload := `{"event":"payment.success","timestamp":1700000000}`
	sig1 := svc.Sign("whsec_test", payload)
	sig2 := svc.Sign("whsec_test", payload)

	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64) // sha256 hex
}

func TestHMACSignatureService_Verify(t *testing.T) {
	svc := NewHMACSignatureService()

	payload := `{"event":"refund.processed"}`
	sig := svc.Sign("secret", payload)

	assert.True(t, svc.Verify("secret", payload, sig))
	assert.False(t, svc.Verify("wrong-secret", payload, sig))
	assert.False(t, svc.Verify("secret", payload+" ", sig))
	assert.False(t, svc.Verify("secret", payload, "deadbeef"))
}
