package order

import (
	"context"
)

// ListParams 后台订单列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Status   Status // 为空表示全部
	UserID   uint   // 为0表示全部用户
}

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单(包含订单明细)
	// 订单和明细必须在同一事务中创建
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 悲观锁查询订单,用于状态变更
	LockByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 更新状态和备注
	UpdateStatus(ctx context.Context, order *Order) error

	// ListByUserID 查询用户的全部订单,按创建时间倒序
	ListByUserID(ctx context.Context, userID uint) ([]*Order, error)

	// List 后台分页查询
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)

	// CountByUserID 用户订单数(测试和统计用)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
