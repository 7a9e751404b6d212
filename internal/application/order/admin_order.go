package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/pkg/metrics"
)

// AdminListOrdersUseCase 后台订单列表
type AdminListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewAdminListOrdersUseCase 创建后台订单列表用例
func NewAdminListOrdersUseCase(orderRepo order.Repository) *AdminListOrdersUseCase {
	return &AdminListOrdersUseCase{orderRepo: orderRepo}
}

// AdminListOrdersRequest 后台列表查询参数,Status为空表示全部
type AdminListOrdersRequest struct {
	Page     int
	PageSize int
	Status   string
	UserID   uint
}

// Execute 分页查询
func (uc *AdminListOrdersUseCase) Execute(ctx context.Context, req AdminListOrdersRequest) ([]*order.Order, int64, error) {
	params := order.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		UserID:   req.UserID,
	}
	if req.Status != "" {
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, 0, err
		}
		params.Status = status
	}
	return uc.orderRepo.List(ctx, params)
}

// UpdateOrderStatusUseCase 后台修改订单状态和备注
// 设计说明:
// 1. 后台可以直接设置任意已知状态,没有"只能前进"的限制
// 2. 已送达、已取消的订单不能再改状态,但备注随时可以修改
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	txManager *mysql.TxManager
	cache     Cache
	events    *eventNotifier
}

// NewUpdateOrderStatusUseCase 创建后台改状态用例
func NewUpdateOrderStatusUseCase(
	orderRepo order.Repository,
	txManager *mysql.TxManager,
	cache Cache,
	publisher order.EventPublisher,
) *UpdateOrderStatusUseCase {
	metrics.InitMetrics()
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
		cache:     cache,
		events:    newEventNotifier(publisher),
	}
}

// UpdateOrderStatusRequest 字段为nil表示不修改
type UpdateOrderStatusRequest struct {
	OrderID uint
	Status  *string
	Notes   *string
}

// Execute 执行修改
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) (*order.Order, error) {
	var target order.Status
	if req.Status != nil {
		status, err := order.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		target = status
	}

	var (
		result *order.Order
		prev   order.Status
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		prev = o.Status

		if target != "" {
			if err := o.SetStatus(target); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			o.UpdateNotes(*req.Notes)
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
	if result.Status != prev {
		metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": string(result.Status)})
		zap.L().Info("order status changed",
			zap.Uint("order_id", result.ID),
			zap.String("from", string(prev)),
			zap.String("to", string(result.Status)),
		)

		event := order.NewEvent(order.EventStatusChanged, result)
		event.PrevStatus = prev
		uc.events.publish(ctx, event)
	}
	return result, nil
}
