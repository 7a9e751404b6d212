package order

import (
	"context"

	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/pkg/metrics"
)

// ListOrdersUseCase 我的订单列表
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// Execute 返回当前用户的全部订单,最新的在前
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID uint) ([]*order.Order, error) {
	return uc.orderRepo.ListByUserID(ctx, userID)
}

// GetOrderUseCase 订单详情
// 1. 先查缓存,未命中再查库并回填
// 2. 他人的订单返回ErrOrderNotFound,不暴露订单是否存在
type GetOrderUseCase struct {
	orderRepo order.Repository
	cache     Cache
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository, cache Cache) *GetOrderUseCase {
	metrics.InitMetrics()
	return &GetOrderUseCase{orderRepo: orderRepo, cache: cache}
}

// Execute 查询订单详情
func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	o, err := loadOrder(ctx, uc.cache, uc.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
