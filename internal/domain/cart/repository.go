package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. 查询时预加载明细及商品,用于实时计算金额
// 2. 事务通过context传递
type Repository interface {
	// FindByUserID 查询用户的购物车,不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// LockByUserID 悲观锁查询购物车(SELECT ... FOR UPDATE),必须在事务中调用
	LockByUserID(ctx context.Context, userID uint) (*Cart, error)

	// Create 创建购物车,user_id冲突返回ErrCartExists
	Create(ctx context.Context, c *Cart) error

	// Delete 删除购物车及其全部明细
	Delete(ctx context.Context, id uint) error
}

// ItemRepository 购物车明细仓储接口
type ItemRepository interface {
	// FindByID 查询明细(含商品),不存在返回ErrCartItemNotFound
	FindByID(ctx context.Context, id uint) (*CartItem, error)

	// FindByCartAndProduct 查询购物车中某商品的明细
	FindByCartAndProduct(ctx context.Context, cartID, productID uint) (*CartItem, error)

	// Create 新增明细,重复返回ErrItemExists
	Create(ctx context.Context, item *CartItem) error

	// UpdateQuantity 覆盖数量
	UpdateQuantity(ctx context.Context, id uint, quantity int) error

	// Delete 删除单条明细
	Delete(ctx context.Context, id uint) error

	// DeleteByCartID 清空购物车,返回删除条数
	DeleteByCartID(ctx context.Context, cartID uint) (int64, error)

	// DeleteByProductID 从所有购物车中移除某商品(商品删除时调用)
	DeleteByProductID(ctx context.Context, productID uint) (int64, error)
}

// Locker 按用户串行化购物车写操作
// 同一用户的加购、改数量、下单等操作必须先获取锁,返回的unlock必须调用
type Locker interface {
	Lock(ctx context.Context, userID uint) (unlock func(), err error)
}
