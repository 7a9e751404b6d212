package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/order"
)

// eventNotifier 事务提交后发布订单事件
// 发布失败只记录日志,不影响已经提交的业务结果
type eventNotifier struct {
	publisher order.EventPublisher
}

func newEventNotifier(publisher order.EventPublisher) *eventNotifier {
	return &eventNotifier{publisher: publisher}
}

func (n *eventNotifier) publish(ctx context.Context, event order.Event) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("publish order event failed",
			zap.String("type", event.Type),
			zap.Uint("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
