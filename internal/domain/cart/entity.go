package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/moongift/internal/domain/product"
)

// 单个商品的数量范围
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Cart 购物车（聚合根）
// 设计说明:
// 1. 每个用户最多一个购物车(user_id唯一索引),首次访问时创建
// 2. 合计金额和件数不落库,每次读取时按当前商品价格计算
// 3. 下单后购物车本身保留,只清空明细
type Cart struct {
	ID        uint
	UserID    uint
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车明细
// Product在读取时预加载,用于计算实时价格
type CartItem struct {
	ID        uint
	CartID    uint
	ProductID uint
	Quantity  int
	Product   *product.Product
	CreatedAt time.Time
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []*CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalItems 商品总件数
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 按当前价格计算的合计金额
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty 是否没有任何明细
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IsOwnedBy 购物车是否属于指定用户
func (c *Cart) IsOwnedBy(userID uint) bool {
	return c.UserID == userID
}

// UnitPrice 当前折后单价,商品未加载时为0
func (i *CartItem) UnitPrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.DiscountedPrice()
}

// Subtotal 小计 = 折后单价 × 数量
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Increase 累加数量,超过上限时截断为MaxQuantity
func (i *CartItem) Increase(quantity int) {
	i.Quantity = ClampQuantity(i.Quantity + quantity)
}

// ClampQuantity 截断到[MinQuantity, MaxQuantity]
func ClampQuantity(quantity int) int {
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	if quantity < MinQuantity {
		return MinQuantity
	}
	return quantity
}

// ValidateQuantity 校验数量是否在[1, 99]之间
func ValidateQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}
