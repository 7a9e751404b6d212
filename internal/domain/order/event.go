package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 订单事件路由键
const (
	EventCreated       = "order.created"
	EventCancelled     = "order.cancelled"
	EventStatusChanged = "order.status_changed"
)

// Event 订单事件
// 事务提交后发布,消费方只做通知类处理
type Event struct {
	Type       string          `json:"type"`
	OrderID    uint            `json:"order_id"`
	UserID     uint            `json:"user_id"`
	Status     Status          `json:"status"`
	PrevStatus Status          `json:"prev_status,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewEvent 根据订单当前状态生成事件
func NewEvent(eventType string, o *Order) Event {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return Event{
		Type:       eventType,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		ItemCount:  count,
		OccurredAt: time.Now(),
	}
}

// EventPublisher 订单事件发布接口
// 实现在infrastructure/messaging,未启用消息队列时使用空实现
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
