package order

import (
	"strings"

	"github.com/xiebiao/moongift/pkg/validate"
)

// ShippingInfo 收货信息(值对象)
// 校验失败时按json字段名返回错误详情
type ShippingInfo struct {
	FullName   string `json:"full_name" validate:"required,max=200"`
	Phone      string `json:"phone" validate:"required,max=20,phone"`
	Email      string `json:"email" validate:"required,max=254,email"`
	Address    string `json:"address" validate:"required,max=500"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Notes      string `json:"notes"`
}

// Normalize 去除首尾空白
func (s ShippingInfo) Normalize() ShippingInfo {
	return ShippingInfo{
		FullName:   strings.TrimSpace(s.FullName),
		Phone:      strings.TrimSpace(s.Phone),
		Email:      strings.TrimSpace(s.Email),
		Address:    strings.TrimSpace(s.Address),
		City:       strings.TrimSpace(s.City),
		PostalCode: strings.TrimSpace(s.PostalCode),
		Notes:      strings.TrimSpace(s.Notes),
	}
}

// Validate 校验收货信息
// 必填: full_name, phone, email, address, city
// phone只允许数字、空格、连字符、括号和前导+
func (s ShippingInfo) Validate() error {
	return validate.Struct(s)
}
