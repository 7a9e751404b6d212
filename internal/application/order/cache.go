package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/order"
	rediscache "github.com/xiebiao/moongift/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/moongift/pkg/metrics"
)

// Cache 订单详情缓存,由redis.OrderCache实现
type Cache interface {
	Get(ctx context.Context, id uint) (*order.Order, error)
	Set(ctx context.Context, o *order.Order) error
	Invalidate(ctx context.Context, o *order.Order) error
}

// NopCache 关闭缓存时使用,总是未命中
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*order.Order, error) { return nil, rediscache.ErrCacheMiss }
func (NopCache) Set(context.Context, *order.Order) error { return nil }
func (NopCache) Invalidate(context.Context, *order.Order) error { return nil }

// loadOrder Cache-Aside读取订单
// 缓存异常降级为查库,不影响请求
func loadOrder(ctx context.Context, cache Cache, repo order.Repository, id uint) (*order.Order, error) {
	o, err := cache.Get(ctx, id)
	switch {
	case err == nil:
		metrics.IncCounterVec(metrics.OrderCacheRequests, map[string]string{"result": "hit"})
		return o, nil
	case errors.Is(err, rediscache.ErrCacheMiss):
		metrics.IncCounterVec(metrics.OrderCacheRequests, map[string]string{"result": "miss"})
	default:
		metrics.IncCounterVec(metrics.OrderCacheRequests, map[string]string{"result": "error"})
		zap.L().Warn("read order cache failed", zap.Uint("order_id", id), zap.Error(err))
	}

	o, err = repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, o); err != nil {
		zap.L().Warn("write order cache failed", zap.Uint("order_id", id), zap.Error(err))
	}
	return o, nil
}

// invalidate 状态变更提交后删除缓存
func invalidate(ctx context.Context, cache Cache, o *order.Order) {
	if err := cache.Invalidate(ctx, o); err != nil {
		zap.L().Warn("invalidate order cache failed", zap.Uint("order_id", o.ID), zap.Error(err))
	}
}
