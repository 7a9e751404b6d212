package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/moongift/internal/domain/cart"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// cartRepository 购物车仓储实现
// 1. 读取时预加载明细及商品(Unscoped,已删除商品也能展示)
// 2. 明细按加入时间排序,保证展示顺序稳定
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.findByUserID(dbFrom(ctx, r.db), userID)
}

// LockByUserID 悲观锁查询购物车
// SELECT * FROM carts WHERE user_id = ? FOR UPDATE
// 锁住购物车行后,同一用户的其它写事务必须等待
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findByUserID(db, userID)
}

func (r *cartRepository) findByUserID(db *gorm.DB, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("cart_items.created_at ASC").Order("cart_items.id ASC")
	}).Preload("Items.Product", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	}).Preload("Items.Product.Category").
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Create 创建购物车
// user_id唯一索引冲突说明并发请求已经创建,返回ErrCartExists由调用方重新查询
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{UserID: c.UserID}
	if err := dbFrom(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrCartExists
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除购物车,明细先删除
func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("cart_id = ?", id).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除购物车明细失败")
	}
	result := db.Delete(&CartModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

func toCartEntity(model *CartModel) *cart.Cart {
	c := &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     make([]*cart.CartItem, len(model.Items)),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for i := range model.Items {
		c.Items[i] = toCartItemEntity(&model.Items[i])
	}
	return c
}

func toCartItemEntity(model *CartItemModel) *cart.CartItem {
	item := &cart.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
	}
	if model.Product != nil {
		item.Product = toProductEntity(model.Product)
	}
	return item
}
