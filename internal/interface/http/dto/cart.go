package dto

import (
	"github.com/xiebiao/moongift/internal/domain/cart"
)

// AddCartItemRequest 加入购物车
// quantity缺省为1,范围校验在领域层
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartItemResponse 购物车明细,价格按当前商品信息计算
type CartItemResponse struct {
	ID              uint   `json:"id"`
	Product         uint   `json:"product"`
	ProductName     string `json:"product_name"`
	ProductSlug     string `json:"product_slug"`
	ProductImage    string `json:"product_image"`
	ProductPrice    string `json:"product_price"`
	ProductDiscount int    `json:"product_discount"`
	DiscountedPrice string `json:"discounted_price"`
	Quantity        int    `json:"quantity"`
	Subtotal        string `json:"subtotal"`
}

// CartResponse 购物车
type CartResponse struct {
	ID         uint               `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice string             `json:"total_price"`
	TotalItems int                `json:"total_items"`
}

// NewCartResponse 领域实体 → 响应
func NewCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		resp := CartItemResponse{
			ID:              item.ID,
			Product:         item.ProductID,
			DiscountedPrice: item.UnitPrice().StringFixed(2),
			Quantity:        item.Quantity,
			Subtotal:        item.Subtotal().StringFixed(2),
		}
		if p := item.Product; p != nil {
			resp.ProductName = p.Name
			resp.ProductSlug = p.Slug
			resp.ProductImage = p.Image
			resp.ProductPrice = p.Price.StringFixed(2)
			resp.ProductDiscount = p.DiscountPercentage
		}
		items[i] = resp
	}

	return CartResponse{
		ID:         c.ID,
		Items:      items,
		TotalPrice: c.TotalPrice().StringFixed(2),
		TotalItems: c.TotalItems(),
	}
}
