package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/pkg/metrics"
)

// CancelOrderUseCase 用户取消订单
// 业务规则:
// 1. 只能取消自己的订单,否则返回ErrOrderNotFound
// 2. 只有pending状态可以取消,其它状态返回ErrCannotCancel且不做修改
// 3. 订单行加锁,避免与后台改状态并发覆盖
type CancelOrderUseCase struct {
	orderRepo order.Repository
	txManager *mysql.TxManager
	cache     Cache
	events    *eventNotifier
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	txManager *mysql.TxManager,
	cache Cache,
	publisher order.EventPublisher,
) *CancelOrderUseCase {
	metrics.InitMetrics()
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
		cache:     cache,
		events:    newEventNotifier(publisher),
	}
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOwnedBy(userID) {
			return order.ErrOrderNotFound
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := uc.orderRepo.UpdateStatus(txCtx, o); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, result)
	metrics.IncCounter(metrics.OrdersCancelledTotal)
	zap.L().Info("order cancelled", zap.Uint("order_id", result.ID), zap.Uint("user_id", userID))

	event := order.NewEvent(order.EventCancelled, result)
	event.PrevStatus = order.StatusPending
	uc.events.publish(ctx, event)
	return result, nil
}
