package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/moongift/internal/domain/product"
)

// 前台固定数量
const (
	featuredLimit = 4
	similarLimit  = 4
)

// ListProductsUseCase 商品列表查询用例
// 设计说明:
// 1. 支持分类、价格区间、关键词搜索和排序
// 2. 价格参数无法解析时忽略该条件,不返回错误
// 3. 只返回在售商品
type ListProductsUseCase struct {
	productRepo product.Repository
}

// NewListProductsUseCase 创建列表查询用例
func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// ListProductsRequest 列表查询请求,价格保持原始字符串
type ListProductsRequest struct {
	Page     int
	PageSize int
	Category string // 分类slug
	MinPrice string
	MaxPrice string
	Search   string
	Ordering string // price, -price, name, -name, created_at, -created_at
}

// Execute 执行列表查询
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) ([]*product.Product, int64, error) {
	return uc.productRepo.List(ctx, toListParams(req, false))
}

func toListParams(req ListProductsRequest, includeInactive bool) product.ListParams {
	return product.ListParams{
		Page:            req.Page,
		PageSize:        req.PageSize,
		CategorySlug:    strings.TrimSpace(req.Category),
		MinPrice:        parsePrice(req.MinPrice),
		MaxPrice:        parsePrice(req.MaxPrice),
		Search:          strings.TrimSpace(req.Search),
		Ordering:        req.Ordering,
		IncludeInactive: includeInactive,
	}
}

// parsePrice 解析价格过滤条件,空值或格式错误返回nil
func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// GetProductUseCase 商品详情
type GetProductUseCase struct {
	productRepo product.Repository
}

// NewGetProductUseCase 创建商品详情用例
func NewGetProductUseCase(productRepo product.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

// ProductDetail 商品详情及同分类推荐
type ProductDetail struct {
	Product *product.Product
	Similar []*product.Product
}

// Execute 按slug查询在售商品,附带最多4个同分类商品
func (uc *GetProductUseCase) Execute(ctx context.Context, slug string) (*ProductDetail, error) {
	p, err := uc.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	similar, err := uc.productRepo.Similar(ctx, p, similarLimit)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: p, Similar: similar}, nil
}

// FeaturedProductsUseCase 首页推荐商品
type FeaturedProductsUseCase struct {
	productRepo product.Repository
}

// NewFeaturedProductsUseCase 创建推荐商品用例
func NewFeaturedProductsUseCase(productRepo product.Repository) *FeaturedProductsUseCase {
	return &FeaturedProductsUseCase{productRepo: productRepo}
}

func (uc *FeaturedProductsUseCase) Execute(ctx context.Context) ([]*product.Product, error) {
	return uc.productRepo.Featured(ctx, featuredLimit)
}

// ListCategoriesUseCase 分类列表,包含在售商品数
type ListCategoriesUseCase struct {
	categoryRepo product.CategoryRepository
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(categoryRepo product.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*product.Category, error) {
	return uc.categoryRepo.List(ctx)
}
