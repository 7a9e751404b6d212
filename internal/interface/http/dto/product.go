package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/moongift/internal/domain/product"
)

// CategoryResponse 分类
type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	ProductCount int64  `json:"product_count"`
}

// ProductResponse 商品列表项
// 价格以两位小数的字符串输出,避免浮点误差
type ProductResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	Category           uint   `json:"category"`
	CategoryName       string `json:"category_name"`
	Description        string `json:"description"`
	Price              string `json:"price"`
	DiscountedPrice    string `json:"discounted_price"`
	DiscountPercentage int    `json:"discount_percentage"`
	Image              string `json:"image"`
	Image2             string `json:"image_2"`
	Image3             string `json:"image_3"`
	UzumLink           string `json:"uzum_link"`
	YandexMarketLink   string `json:"yandex_market_link"`
	IsFeatured         bool   `json:"is_featured"`
}

// ProductDetailResponse 商品详情
type ProductDetailResponse struct {
	ProductResponse
	CreatedAt       time.Time         `json:"created_at"`
	SimilarProducts []ProductResponse `json:"similar_products"`
}

// AdminProductResponse 后台商品,包含上下架状态
type AdminProductResponse struct {
	ProductResponse
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductRequest 后台新增/编辑商品
// price使用decimal直接解析JSON中的数字或字符串，取值范围由领域服务校验
type ProductRequest struct {
	Category           uint            `json:"category" binding:"required"`
	Name               string          `json:"name" binding:"required,max=200"`
	Slug               string          `json:"slug" binding:"max=200"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage int             `json:"discount_percentage" binding:"min=0,max=100"`
	Image              string          `json:"image" binding:"omitempty,url"`
	Image2             string          `json:"image_2" binding:"omitempty,url"`
	Image3             string          `json:"image_3" binding:"omitempty,url"`
	UzumLink           string          `json:"uzum_link" binding:"omitempty,url"`
	YandexMarketLink   string          `json:"yandex_market_link" binding:"omitempty,url"`
	IsFeatured         bool            `json:"is_featured"`
	IsActive           *bool           `json:"is_active"`
}

// CategoryRequest 后台新增分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"omitempty,url"`
}

// NewCategoryResponse 领域实体 → 响应
func NewCategoryResponse(c *product.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Image:        c.Image,
		ProductCount: c.ProductCount,
	}
}

// NewCategoryList 分类列表
func NewCategoryList(categories []*product.Category) []CategoryResponse {
	list := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		list[i] = NewCategoryResponse(c)
	}
	return list
}

// NewProductResponse 领域实体 → 列表项
func NewProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Category:           p.CategoryID,
		CategoryName:       p.CategoryName(),
		Description:        p.Description,
		Price:              p.Price.StringFixed(2),
		DiscountedPrice:    p.DiscountedPrice().StringFixed(2),
		DiscountPercentage: p.DiscountPercentage,
		Image:              p.Image,
		Image2:             p.Image2,
		Image3:             p.Image3,
		UzumLink:           p.UzumLink,
		YandexMarketLink:   p.YandexMarketLink,
		IsFeatured:         p.IsFeatured,
	}
}

// NewProductList 商品列表
func NewProductList(products []*product.Product) []ProductResponse {
	list := make([]ProductResponse, len(products))
	for i, p := range products {
		list[i] = NewProductResponse(p)
	}
	return list
}

// NewProductDetailResponse 商品详情
func NewProductDetailResponse(p *product.Product, similar []*product.Product) ProductDetailResponse {
	return ProductDetailResponse{
		ProductResponse: NewProductResponse(p),
		CreatedAt:       p.CreatedAt,
		SimilarProducts: NewProductList(similar),
	}
}

// NewAdminProductResponse 后台商品
func NewAdminProductResponse(p *product.Product) AdminProductResponse {
	return AdminProductResponse{
		ProductResponse: NewProductResponse(p),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewAdminProductList 后台商品列表
func NewAdminProductList(products []*product.Product) []AdminProductResponse {
	list := make([]AdminProductResponse, len(products))
	for i, p := range products {
		list[i] = NewAdminProductResponse(p)
	}
	return list
}
