package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/pkg/circuitbreaker"
)

type fakeSender struct {
	mu       sync.Mutex
	err      error
	keys     []string
	messages []interface{}
}

func (s *fakeSender) Publish(ctx context.Context, routingKey string, message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, routingKey)
	s.messages = append(s.messages, message)
	return nil
}

func testEvent(eventType string) order.Event {
	o := &order.Order{
		ID:         7,
		UserID:     3,
		Status:     order.StatusPending,
		TotalPrice: decimal.RequireFromString("2300.00"),
		Items: []order.OrderItem{
			{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(900)},
			{ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(500)},
		},
	}
	return order.NewEvent(eventType, o)
}

func TestOrderEventPublisher(t *testing.T) {
	t.Run("事件类型作为routing key", func(t *testing.T) {
		sender := &fakeSender{}
		breaker := circuitbreaker.NewCircuitBreaker("test-publish-ok", circuitbreaker.DefaultConfig())
		p := NewOrderEventPublisher(sender, breaker)

		event := testEvent(order.EventCreated)
		require.NoError(t, p.Publish(context.Background(), event))

		assert.Equal(t, []string{order.EventCreated}, sender.keys)
		assert.Equal(t, event, sender.messages[0])
		assert.Equal(t, 3, event.ItemCount)
	})

	t.Run("连续失败后熔断,不再调用下游", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("connection refused")}
		cfg := circuitbreaker.DefaultConfig()
		cfg.ReadyToTrip = circuitbreaker.ConsecutiveFailures(2)
		cfg.Timeout = time.Minute
		breaker := circuitbreaker.NewCircuitBreaker("test-publish-trip", cfg)
		p := NewOrderEventPublisher(sender, breaker)

		for i := 0; i < 2; i++ {
			assert.Error(t, p.Publish(context.Background(), testEvent(order.EventCreated)))
		}
		assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

		sender.err = nil
		err := p.Publish(context.Background(), testEvent(order.EventCreated))
		assert.True(t, circuitbreaker.IsRejected(err))
		assert.Empty(t, sender.keys)
	})

	t.Run("空实现", func(t *testing.T) {
		assert.NoError(t, NoopPublisher{}.Publish(context.Background(), testEvent(order.EventCancelled)))
	})
}

func TestOrderEventHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewOrderEventHandler(zap.New(core))

	t.Run("记录事件", func(t *testing.T) {
		body, err := json.Marshal(testEvent(order.EventCreated))
		require.NoError(t, err)

		require.NoError(t, handler(context.Background(), order.EventCreated, body))

		entries := logs.FilterMessage("order event received").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, order.EventCreated, fields["type"])
		assert.Equal(t, "2300.00", fields["total_price"])
	})

	t.Run("无法解析的消息被丢弃", func(t *testing.T) {
		err := handler(context.Background(), order.EventCreated, []byte("{not json"))
		assert.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("drop malformed order event").Len())
	})
}
