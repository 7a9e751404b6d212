package cart

import (
	"context"

	"github.com/xiebiao/moongift/internal/domain/cart"
)

// RemoveItemUseCase 删除购物车商品
type RemoveItemUseCase struct {
	store *Store
}

// NewRemoveItemUseCase 创建删除商品用例
func NewRemoveItemUseCase(store *Store) *RemoveItemUseCase {
	return &RemoveItemUseCase{store: store}
}

// Execute 删除单条明细,不存在或不属于当前用户返回ErrCartItemNotFound
func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, itemID uint) (*cart.Cart, error) {
	return uc.store.mutate(ctx, "remove", userID, func(ctx context.Context, c *cart.Cart) error {
		item, err := uc.store.ownedItem(ctx, c, itemID)
		if err != nil {
			return err
		}
		return uc.store.itemRepo.Delete(ctx, item.ID)
	})
}

// ClearCartUseCase 清空购物车
type ClearCartUseCase struct {
	store *Store
}

// NewClearCartUseCase 创建清空购物车用例
func NewClearCartUseCase(store *Store) *ClearCartUseCase {
	return &ClearCartUseCase{store: store}
}

// Execute 删除全部明细,购物车本身保留;已经为空时同样成功
func (uc *ClearCartUseCase) Execute(ctx context.Context, userID uint) (*cart.Cart, error) {
	return uc.store.mutate(ctx, "clear", userID, func(ctx context.Context, c *cart.Cart) error {
		_, err := uc.store.itemRepo.DeleteByCartID(ctx, c.ID)
		return err
	})
}
