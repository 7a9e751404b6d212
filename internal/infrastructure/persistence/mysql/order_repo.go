package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/moongift/internal/domain/order"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 后台订单列表默认每页数量
const defaultOrderPageSize = 20

// orderRepository 订单仓储实现
// 教学要点:
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递(dbFrom)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM会自动保存关联的Items,必须在事务中调用才能和清空购物车保持原子性
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(包含明细)
//
//	SELECT * FROM orders WHERE id = ?
//	SELECT * FROM order_items WHERE order_id IN (?)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.findByID(dbFrom(ctx, r.db), id)
}

// LockByID 悲观锁查询订单,避免取消与后台改状态并发覆盖
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.findByID(dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *orderRepository) findByID(db *gorm.DB, id uint) (*order.Order, error) {
	var model OrderModel
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_items.id ASC")
	}).First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 更新状态和备注,明细不变
// 调用方已通过LockByID确认订单存在,MySQL在值未变化时RowsAffected为0,这里不据此判断
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	err := dbFrom(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"status":     string(o.Status),
		"notes":      o.Notes,
		"updated_at": o.UpdatedAt,
	}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单失败")
	}
	return nil
}

// ListByUserID 查询用户的订单列表,最新的在前
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := dbFrom(ctx, r.db).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_items.id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// List 后台分页查询
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, defaultOrderPageSize)

	query := dbFrom(ctx, r.db).Model(&OrderModel{})
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := query.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_items.id ASC") }).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), total, nil
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := dbFrom(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计订单失败")
	}
	return count, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &OrderModel{
		ID:         o.ID,
		UserID:     o.UserID,
		FullName:   o.Shipping.FullName,
		Phone:      o.Shipping.Phone,
		Email:      o.Shipping.Email,
		Address:    o.Shipping.Address,
		City:       o.Shipping.City,
		PostalCode: o.Shipping.PostalCode,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		Notes:      o.Notes,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &order.Order{
		ID:     model.ID,
		UserID: model.UserID,
		Shipping: order.ShippingInfo{
			FullName:   model.FullName,
			Phone:      model.Phone,
			Email:      model.Email,
			Address:    model.Address,
			City:       model.City,
			PostalCode: model.PostalCode,
			Notes:      model.Notes,
		},
		TotalPrice: model.TotalPrice,
		Status:     order.Status(model.Status),
		Notes:      model.Notes,
		Items:      items,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
