package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/cart"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type cartItemRepository struct {
	db *gorm.DB
}

// NewCartItemRepository 创建购物车明细仓储
func NewCartItemRepository(db *gorm.DB) cart.ItemRepository {
	return &cartItemRepository{db: db}
}

func (r *cartItemRepository) FindByID(ctx context.Context, id uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := dbFrom(ctx, r.db).
		Preload("Product", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车明细失败")
	}
	return toCartItemEntity(&model), nil
}

func (r *cartItemRepository) FindByCartAndProduct(ctx context.Context, cartID, productID uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := dbFrom(ctx, r.db).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车明细失败")
	}
	return toCartItemEntity(&model), nil
}

// Create 新增明细
// (cart_id, product_id)唯一索引保证同一商品只有一行
func (r *cartItemRepository) Create(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if err := dbFrom(ctx, r.db).Omit("Product").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrItemExists
		}
		return apperrors.Wrap(err, "新增购物车明细失败")
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return nil
}

func (r *cartItemRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	result := dbFrom(ctx, r.db).Model(&CartItemModel{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车数量失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartItemRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// DeleteByCartID 清空购物车,空购物车返回0
func (r *cartItemRepository) DeleteByCartID(ctx context.Context, cartID uint) (int64, error) {
	result := dbFrom(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空购物车失败")
	}
	return result.RowsAffected, nil
}

// DeleteByProductID 从所有购物车中移除某商品
func (r *cartItemRepository) DeleteByProductID(ctx context.Context, productID uint) (int64, error) {
	result := dbFrom(ctx, r.db).Where("product_id = ?", productID).Delete(&CartItemModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "移除购物车商品失败")
	}
	return result.RowsAffected, nil
}
