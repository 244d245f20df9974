package worker

import (
	"testing"
	"time"

	"payment-gateway-sim/config"

	"github.com/stretchr/testify/assert"
)

func TestSimulator_TestMode(t *testing.T) {
	sim := NewSimulator(config.WorkerConfig{
		TestMode:           true,
		TestDelay:          10 * time.Millisecond,
		TestPaymentSuccess: true,
	})

	assert.True(t, sim.PaymentSucceeds("upi"))
	assert.True(t, sim.PaymentSucceeds("card"))
	assert.Equal(t, 10*time.Millisecond, sim.PaymentDelay())
	assert.Equal(t, 10*time.Millisecond, sim.RefundDelay())

	sim = NewSimulator(config.WorkerConfig{TestMode: true, TestPaymentSuccess: false})
	assert.False(t, sim.PaymentSucceeds("upi"))
	assert.False(t, sim.PaymentSucceeds("netbanking"))
}

func TestSimulator_SuccessRates(t *testing.T) {
	sim := NewSimulator(config.WorkerConfig{})

	// Draws just inside and outside each method's threshold.
	sim.rand = func() float64 { return 0.89 }
	assert.True(t, sim.PaymentSucceeds("upi"))
	assert.True(t, sim.PaymentSucceeds("UPI"))

	sim.rand = func() float64 { return 0.91 }
	assert.False(t, sim.PaymentSucceeds("upi"))
	assert.True(t, sim.PaymentSucceeds("card"))

	sim.rand = func() float64 { return 0.96 }
	assert.False(t, sim.PaymentSucceeds("card"))
	assert.False(t, sim.PaymentSucceeds("wallet"))
}

func TestSimulator_DelayWindows(t *testing.T) {
	sim := NewSimulator(config.WorkerConfig{})

	sim.rand = func() float64 { return 0 }
	assert.Equal(t, 5*time.Second, sim.PaymentDelay())
	assert.Equal(t, 3*time.Second, sim.RefundDelay())

	sim.rand = func() float64 { return 0.999 }
	assert.Less(t, sim.PaymentDelay(), 10*time.Second)
	assert.GreaterOrEqual(t, sim.PaymentDelay(), 5*time.Second)
	assert.Less(t, sim.RefundDelay(), 5*time.Second)
	assert.GreaterOrEqual(t, sim.RefundDelay(), 3*time.Second)
}
