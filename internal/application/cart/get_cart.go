package cart

import (
	"context"

	"github.com/xiebiao/moongift/internal/domain/cart"
)

// GetCartUseCase 查看购物车
// 首次访问时自动创建空购物车,金额按当前商品价格实时计算
type GetCartUseCase struct {
	store *Store
}

// NewGetCartUseCase 创建查看购物车用例
func NewGetCartUseCase(store *Store) *GetCartUseCase {
	return &GetCartUseCase{store: store}
}

// Execute 执行查看购物车
func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*cart.Cart, error) {
	return uc.store.GetOrCreate(ctx, userID)
}
