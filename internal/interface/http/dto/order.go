package dto

import (
	"time"

	"github.com/xiebiao/moongift/internal/domain/order"
)

// CreateOrderRequest 下单请求(收货信息)
// 字段校验在领域层完成,错误按字段返回
type CreateOrderRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

// ToShipping 转换为领域值对象
func (r CreateOrderRequest) ToShipping() order.ShippingInfo {
	return order.ShippingInfo{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Notes:      r.Notes,
	}
}

// UpdateOrderRequest 后台修改订单,字段缺省表示不修改
type UpdateOrderRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// OrderItemResponse 订单明细(快照)
type OrderItemResponse struct {
	ID          uint   `json:"id"`
	Product     uint   `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

// OrderResponse 订单
type OrderResponse struct {
	ID            uint                `json:"id"`
	User          uint                `json:"user"`
	FullName      string              `json:"full_name"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	PostalCode    string              `json:"postal_code"`
	TotalPrice    string              `json:"total_price"`
	Status        string              `json:"status"`
	StatusDisplay string              `json:"status_display"`
	Notes         string              `json:"notes"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewOrderResponse 领域实体 → 响应
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			Product:     item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.StringFixed(2),
			Subtotal:    item.Subtotal().StringFixed(2),
		}
	}

	return OrderResponse{
		ID:            o.ID,
		User:          o.UserID,
		FullName:      o.Shipping.FullName,
		Phone:         o.Shipping.Phone,
		Email:         o.Shipping.Email,
		Address:       o.Shipping.Address,
		City:          o.Shipping.City,
		PostalCode:    o.Shipping.PostalCode,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		Status:        string(o.Status),
		StatusDisplay: o.Status.Display(),
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// NewOrderList 订单列表
func NewOrderList(orders []*order.Order) []OrderResponse {
	list := make([]OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = NewOrderResponse(o)
	}
	return list
}
