package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDownstream = errors.New("rabbitmq unavailable")

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: ConsecutiveFailures(3),
	})
}

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker(time.Second)

	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 5, cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errDownstream }), errDownstream)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.True(t, IsRejected(err))
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	t.Run("探测成功后关闭", func(t *testing.T) {
		cb := newTestBreaker(50 * time.Millisecond)
		for i := 0; i < 3; i++ {
			_ = cb.Execute(func() error { return errDownstream })
		}
		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, StateHalfOpen, cb.State())

		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("探测失败回到打开", func(t *testing.T) {
		cb := newTestBreaker(50 * time.Millisecond)
		for i := 0; i < 3; i++ {
			_ = cb.Execute(func() error { return errDownstream })
		}
		time.Sleep(80 * time.Millisecond)

		_ = cb.Execute(func() error { return errDownstream })
		assert.Equal(t, StateOpen, cb.State())
	})
}

func TestFailureRate(t *testing.T) {
	trip := FailureRate(10, 0.5)

	assert.False(t, trip(Counts{Requests: 5, TotalFailures: 5}))
	assert.False(t, trip(Counts{Requests: 10, TotalFailures: 4}))
	assert.True(t, trip(Counts{Requests: 10, TotalFailures: 5}))
}

func TestIsRejected(t *testing.T) {
	assert.True(t, IsRejected(ErrTooManyRequests))
	assert.False(t, IsRejected(errDownstream))
	assert.False(t, IsRejected(nil))
}
