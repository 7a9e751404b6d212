package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category 商品分类
type Category struct {
	ID           uint
	Name         string
	Slug         string
	Description  string
	Image        string
	ProductCount int64 // 在售商品数量（查询时统计，不落库）
	CreatedAt    time.Time
}

// Product 商品实体（聚合根）
// 设计说明：
// 1. 价格使用decimal存储，两位小数
// 2. 折扣为0-100的整数百分比，折后价由EffectivePrice实时计算
// 3. 图片只保存URL，不负责存储
// 4. IsActive=false的商品对前台不可见，也不能加入购物车
type Product struct {
	ID                 uint
	CategoryID         uint
	Category           *Category
	Name               string
	Slug               string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage int
	Image              string
	Image2             string
	Image3             string
	UzumLink           string
	YandexMarketLink   string
	IsFeatured         bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DiscountedPrice 当前折后单价
func (p *Product) DiscountedPrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountPercentage)
}

// Images 返回非空的图片URL列表
func (p *Product) Images() []string {
	images := make([]string, 0, 3)
	for _, img := range []string{p.Image, p.Image2, p.Image3} {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}

// CategoryName 分类名称（未预加载时为空）
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
