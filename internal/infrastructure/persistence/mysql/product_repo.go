package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/product"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 商品列表默认每页数量
const defaultProductPageSize = 12

// orderingColumns 排序参数白名单,防止SQL注入
var orderingColumns = map[string]string{
	product.OrderingPrice:         "products.price ASC",
	product.OrderingPriceDesc:     "products.price DESC",
	product.OrderingName:          "products.name ASC",
	product.OrderingNameDesc:      "products.name DESC",
	product.OrderingCreatedAt:     "products.created_at ASC",
	product.OrderingCreatedAtDesc: "products.created_at DESC",
}

// productRepository 商品仓储实现
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	// 分类只关联ID,不级联写入
	if err := dbFrom(ctx, r.db).Omit("Category").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 更新商品
// 使用map更新,is_active=false等零值也会写入
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	result := dbFrom(ctx, r.db).Model(&ProductModel{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id":         p.CategoryID,
		"name":                p.Name,
		"slug":                p.Slug,
		"description":         p.Description,
		"price":               p.Price,
		"discount_percentage": p.DiscountPercentage,
		"image":               p.Image,
		"image_2":             p.Image2,
		"image_3":             p.Image3,
		"uzum_link":           p.UzumLink,
		"yandex_market_link":  p.YandexMarketLink,
		"is_featured":         p.IsFeatured,
		"is_active":           p.IsActive,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return product.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// Delete 软删除商品
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// FindByID 根据ID查找商品(包含下架商品)
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	if err := dbFrom(ctx, r.db).Preload("Category").First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindBySlug 根据slug查找在售商品
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	var model ProductModel
	err := dbFrom(ctx, r.db).Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// List 分页查询商品
// 支持分类slug、价格区间、关键词搜索和排序
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, defaultProductPageSize)

	query := dbFrom(ctx, r.db).Model(&ProductModel{})
	if !params.IncludeInactive {
		query = query.Where("products.is_active = ?", true)
	}
	if params.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", params.CategorySlug)
	}
	if params.MinPrice != nil {
		query = query.Where("products.price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("products.price <= ?", *params.MaxPrice)
	}
	if params.Search != "" {
		keyword := "%" + params.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	orderBy, ok := orderingColumns[params.Ordering]
	if !ok {
		orderBy = "products.created_at DESC"
	}

	var models []ProductModel
	err := query.Preload("Category").
		Order(orderBy).
		Order("products.id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	return toProductEntities(models), total, nil
}

// Featured 推荐商品
func (r *productRepository) Featured(ctx context.Context, limit int) ([]*product.Product, error) {
	var models []ProductModel
	err := dbFrom(ctx, r.db).Preload("Category").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询推荐商品失败")
	}
	return toProductEntities(models), nil
}

// Similar 同分类的其它在售商品
func (r *productRepository) Similar(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error) {
	var models []ProductModel
	err := dbFrom(ctx, r.db).Preload("Category").
		Where("category_id = ? AND id <> ? AND is_active = ?", p.CategoryID, p.ID, true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询相似商品失败")
	}
	return toProductEntities(models), nil
}

func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:                 p.ID,
		CategoryID:         p.CategoryID,
		Name:               p.Name,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Image:              p.Image,
		Image2:             p.Image2,
		Image3:             p.Image3,
		UzumLink:           p.UzumLink,
		YandexMarketLink:   p.YandexMarketLink,
		IsFeatured:         p.IsFeatured,
		IsActive:           p.IsActive,
	}
}

func toProductEntity(model *ProductModel) *product.Product {
	p := &product.Product{
		ID:                 model.ID,
		CategoryID:         model.CategoryID,
		Name:               model.Name,
		Slug:               model.Slug,
		Description:        model.Description,
		Price:              model.Price,
		DiscountPercentage: model.DiscountPercentage,
		Image:              model.Image,
		Image2:             model.Image2,
		Image3:             model.Image3,
		UzumLink:           model.UzumLink,
		YandexMarketLink:   model.YandexMarketLink,
		IsFeatured:         model.IsFeatured,
		IsActive:           model.IsActive,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if model.Category != nil {
		p.Category = toCategoryEntity(model.Category)
	}
	return p
}

func toProductEntities(models []ProductModel) []*product.Product {
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}
