package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookstore-checkout/pkg/metrics"
)

var errBroker = errors.New("broker unreachable")

func TestCircuitBreaker_ClosedPassesThrough(t *testing.T) {
	cb := New("closed-test", Config{MaxRequests: 1, Timeout: time.Second, FailureThreshold: 3})

	calls := 0
	for i := 0; i < 5; i++ {
		err := cb.Execute(func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
	}
	assert.Equal(t, 5, calls)
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("open-test", Config{MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 3})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errBroker }), errBroker)
	}
	assert.Equal(t, "open", cb.State())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("open-test")))

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断状态下不应调用下游")
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New("half-open-test", Config{MaxRequests: 1, Timeout: 50 * time.Millisecond, FailureThreshold: 1})

	assert.Error(t, cb.Execute(func() error { return errBroker }))
	assert.Equal(t, "open", cb.State())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "half-open", cb.State())

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("half-open-test")))
}
