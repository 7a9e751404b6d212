// Package messaging 订单事件的发布与消费
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/pkg/circuitbreaker"
	"github.com/xiebiao/moongift/pkg/mq"
)

// publishTimeout 单次发布的超时时间,超时计入熔断失败
const publishTimeout = 3 * time.Second

// Sender 消息发送接口,由*mq.Publisher实现
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 订单事件发布者
// 1. routing key即事件类型(order.created等)
// 2. 熔断器打开时直接返回错误,不等待RabbitMQ超时
type OrderEventPublisher struct {
	sender  Sender
	breaker *circuitbreaker.CircuitBreaker
}

// NewOrderEventPublisher 创建订单事件发布者
func NewOrderEventPublisher(sender Sender, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	return &OrderEventPublisher{sender: sender, breaker: breaker}
}

// Publish 发布订单事件
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	return p.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		return p.sender.Publish(ctx, event.Type, event)
	})
}

// NoopPublisher 未启用消息队列时使用,丢弃全部事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, order.Event) error {
	return nil
}

// NewOrderEventHandler 订单事件消费处理
// 只做日志通知;无法解析的消息直接丢弃(返回nil),避免反复重新入队
func NewOrderEventHandler(logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		var event order.Event
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Warn("drop malformed order event",
				zap.String("routing_key", routingKey),
				zap.ByteString("body", body),
				zap.Error(err),
			)
			return nil
		}

		logger.Info("order event received",
			zap.String("type", event.Type),
			zap.Uint("order_id", event.OrderID),
			zap.Uint("user_id", event.UserID),
			zap.String("status", string(event.Status)),
			zap.String("prev_status", string(event.PrevStatus)),
			zap.String("total_price", event.TotalPrice.StringFixed(2)),
			zap.Int("item_count", event.ItemCount),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	}
}
