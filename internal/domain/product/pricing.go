package product

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectivePrice 计算折后单价
// 规则：
//   - discount <= 0 时返回原价
//   - 否则 unitPrice × (100 - discount) / 100，四舍五入保留两位小数
//   - discount超出100按100处理，结果不会为负
func EffectivePrice(unitPrice decimal.Decimal, discountPercentage int) decimal.Decimal {
	if discountPercentage <= 0 {
		return unitPrice
	}
	if discountPercentage > 100 {
		discountPercentage = 100
	}
	factor := decimal.NewFromInt(int64(100 - discountPercentage))
	return unitPrice.Mul(factor).Div(hundred).Round(2)
}
