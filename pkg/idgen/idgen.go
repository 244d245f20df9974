// Package idgen generates the short prefixed identifiers used for payments
// and refunds (pay_..., rfnd_...).
package idgen

import (
	"crypto/rand"
	"math/big"
)

const alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// entityIDLen is the number of random characters after the prefix.
const entityIDLen = 16

// NewPaymentID returns a fresh payment identifier.
func NewPaymentID() string { return randomID("pay_", entityIDLen) }

// NewRefundID returns a fresh refund identifier.
func NewRefundID() string { return randomID("rfnd_", entityIDLen) }

// RandomKey returns n random alphanumeric characters, used for API keys
// and secrets.
func RandomKey(n int) string { return randomID("", n) }

func randomID(prefix string, n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(alphanum)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			panic(err)
		}
		b[i] = alphanum[idx.Int64()]
	}
	return prefix + string(b)
}
