package cart

import (
	"context"

	"github.com/xiebiao/moongift/internal/domain/cart"
)

// UpdateItemUseCase 修改购物车商品数量
// 与加购不同,这里是覆盖数量,超出1-99直接报错
type UpdateItemUseCase struct {
	store *Store
}

// NewUpdateItemUseCase 创建修改数量用例
func NewUpdateItemUseCase(store *Store) *UpdateItemUseCase {
	return &UpdateItemUseCase{store: store}
}

// UpdateItemRequest 修改数量请求
type UpdateItemRequest struct {
	UserID   uint
	ItemID   uint
	Quantity int
}

// Execute 执行修改数量
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*cart.Cart, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	return uc.store.mutate(ctx, "update", req.UserID, func(ctx context.Context, c *cart.Cart) error {
		item, err := uc.store.ownedItem(ctx, c, req.ItemID)
		if err != nil {
			return err
		}
		return uc.store.itemRepo.UpdateQuantity(ctx, item.ID, req.Quantity)
	})
}

// ownedItem 查询属于该购物车的明细
// 其他用户的明细同样返回ErrCartItemNotFound,不暴露是否存在
func (s *Store) ownedItem(ctx context.Context, c *cart.Cart, itemID uint) (*cart.CartItem, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != c.ID {
		return nil, cart.ErrCartItemNotFound
	}
	return item, nil
}
