package worker

import (
	"math/rand"
	"strings"
	"time"

	"payment-gateway-sim/config"
)

// Success rates for the simulated bank. UPI fails a bit more often than
// the other methods.
const (
	upiSuccessRate     = 0.90
	defaultSuccessRate = 0.95
)

// Processing delay windows outside test mode.
const (
	paymentDelayBase   = 5 * time.Second
	paymentDelayJitter = 5 * time.Second
	refundDelayBase    = 3 * time.Second
	refundDelayJitter  = 2 * time.Second
)

// Simulator decides payment outcomes and processing delays. In test mode
// both are fixed by config; otherwise the outcome is a random draw against
// the per-method success rate. The draw function is injectable for tests.
type Simulator struct {
	cfg  config.WorkerConfig
	rand func() float64
}

// NewSimulator creates a Simulator backed by math/rand.
func NewSimulator(cfg config.WorkerConfig) *Simulator {
	return &Simulator{cfg: cfg, rand: rand.Float64}
}

// PaymentSucceeds draws the outcome for a payment with the given method.
func (s *Simulator) PaymentSucceeds(method string) bool {
	if s.cfg.TestMode {
		return s.cfg.TestPaymentSuccess
	}
	if strings.EqualFold(method, "upi") {
		return s.rand() < upiSuccessRate
	}
	return s.rand() < defaultSuccessRate
}

// PaymentDelay returns the simulated bank processing time for a payment.
func (s *Simulator) PaymentDelay() time.Duration {
	if s.cfg.TestMode {
		return s.cfg.TestDelay
	}
	return paymentDelayBase + time.Duration(s.rand()*float64(paymentDelayJitter))
}

// RefundDelay returns the simulated processing time for a refund.
func (s *Simulator) RefundDelay() time.Duration {
	if s.cfg.TestMode {
		return s.cfg.TestDelay
	}
	return refundDelayBase + time.Duration(s.rand()*float64(refundDelayJitter))
}
