package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/product"
)

// AddItemUseCase 加入购物车
// 业务规则:
// 1. 商品必须存在且在售,否则返回product_id字段错误
// 2. 数量必须在1-99之间
// 3. 已在购物车中的商品累加数量,超过99时截断为99(不报错)
type AddItemUseCase struct {
	store *Store
}

// NewAddItemUseCase 创建加购用例
func NewAddItemUseCase(store *Store) *AddItemUseCase {
	return &AddItemUseCase{store: store}
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// Execute 执行加购
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*cart.Cart, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	p, err := uc.store.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, cart.ErrProductUnavailable
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, cart.ErrProductUnavailable
	}

	return uc.store.mutate(ctx, "add", req.UserID, func(ctx context.Context, c *cart.Cart) error {
		item, err := uc.store.itemRepo.FindByCartAndProduct(ctx, c.ID, p.ID)
		if errors.Is(err, cart.ErrCartItemNotFound) {
			return uc.store.itemRepo.Create(ctx, &cart.CartItem{
				CartID:    c.ID,
				ProductID: p.ID,
				Quantity:  req.Quantity,
			})
		}
		if err != nil {
			return err
		}

		item.Increase(req.Quantity)
		return uc.store.itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity)
	})
}
