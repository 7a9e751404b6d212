package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/product"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) product.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *product.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*product.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, product.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

// categoryRow 分类及在售商品数
type categoryRow struct {
	CategoryModel
	ProductCount int64
}

// List 全部分类,按名称排序
// 使用LEFT JOIN统计在售商品数量,一次查询完成
func (r *categoryRepository) List(ctx context.Context) ([]*product.Category, error) {
	var rows []categoryRow
	err := dbFrom(ctx, r.db).Model(&CategoryModel{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.is_active = ? AND products.deleted_at IS NULL", true).
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*product.Category, len(rows))
	for i := range rows {
		c := toCategoryEntity(&rows[i].CategoryModel)
		c.ProductCount = rows[i].ProductCount
		categories[i] = c
	}
	return categories, nil
}

func toCategoryEntity(model *CategoryModel) *product.Category {
	return &product.Category{
		ID:          model.ID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
		Image:       model.Image,
		CreatedAt:   model.CreatedAt,
	}
}
