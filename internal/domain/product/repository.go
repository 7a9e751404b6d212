package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// 排序方式（与前端约定的ordering参数一致）
const (
	OrderingPrice         = "price"
	OrderingPriceDesc     = "-price"
	OrderingName          = "name"
	OrderingNameDesc      = "-name"
	OrderingCreatedAt     = "created_at"
	OrderingCreatedAtDesc = "-created_at"
)

// ListParams 商品列表查询参数
type ListParams struct {
	Page            int
	PageSize        int
	CategorySlug    string
	MinPrice        *decimal.Decimal // 按原价过滤
	MaxPrice        *decimal.Decimal
	Search          string // 匹配名称和描述
	Ordering        string
	IncludeInactive bool // 后台管理查询包含下架商品
}

// Repository 商品仓储接口
type Repository interface {
	// Create 创建商品，slug重复返回ErrSlugDuplicate
	Create(ctx context.Context, p *Product) error

	// Update 更新商品全部可编辑字段
	Update(ctx context.Context, p *Product) error

	// Delete 软删除商品
	Delete(ctx context.Context, id uint) error

	// FindByID 根据ID查找（包含下架商品）
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySlug 根据slug查找在售商品
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// List 分页查询
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// Featured 推荐商品（在售且is_featured）
	Featured(ctx context.Context, limit int) ([]*Product, error)

	// Similar 同分类的其它在售商品
	Similar(ctx context.Context, p *Product, limit int) ([]*Product, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error

	FindByID(ctx context.Context, id uint) (*Category, error)

	// List 全部分类，ProductCount为在售商品数量
	List(ctx context.Context) ([]*Category, error)
}
