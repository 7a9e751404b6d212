package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 状态流转:
//
//	pending → processing → shipped → delivered
//	pending → cancelled
//
// delivered和cancelled是终态
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var statusDisplay = map[Status]string{
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

// Display 状态的展示名称
func (s Status) Display() string {
	if label, ok := statusDisplay[s]; ok {
		return label
	}
	return string(s)
}

// IsValid 是否为已知状态
func (s Status) IsValid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体,创建后明细不可变
// 2. TotalPrice在创建时按购物车实时价格计算并冻结
// 3. 创建后只有Status和Notes可以修改,订单不会被删除
type Order struct {
	ID         uint
	UserID     uint
	Shipping   ShippingInfo
	TotalPrice decimal.Decimal
	Status     Status
	Notes      string
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem 订单明细
// 设计说明:
// 1. Price是下单时的折后单价快照,商品改价不影响历史订单
// 2. ProductName同样是快照,商品改名或删除后订单仍可展示
// 3. 只保存ProductID,不引用商品聚合
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal 小计 = 快照单价 × 数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建新订单(工厂方法)
// 初始状态为pending,备注取自收货信息
func NewOrder(userID uint, shipping ShippingInfo, items []OrderItem, total decimal.Decimal) *Order {
	now := time.Now()
	return &Order{
		UserID:     userID,
		Shipping:   shipping,
		TotalPrice: total,
		Status:     StatusPending,
		Notes:      shipping.Notes,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CalculateTotal 按明细快照计算合计
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Cancel 用户取消订单
// 只有pending状态可以取消,其它状态返回ErrCannotCancel且状态不变
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return ErrCannotCancel
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// SetStatus 后台直接设置状态
// 设计说明:
// 1. 后台可以跳转到任意已知状态(例如pending直接到shipped)
// 2. 终态不能再变更,避免已取消订单被重新激活
func (o *Order) SetStatus(target Status) error {
	if !target.IsValid() {
		return ErrUnknownStatus
	}
	if target == o.Status {
		return nil
	}
	if o.Status.IsTerminal() {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateNotes 更新备注
func (o *Order) UpdateNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
