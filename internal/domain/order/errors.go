package order

import (
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(包括访问他人订单)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrCannotCancel 只有待处理订单可以取消
	ErrCannotCancel = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "只能取消待处理的订单")

	// ErrInvalidStatusTransition 终态订单不能再变更状态
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrEmptyCart 购物车不存在或没有商品,不能下单
	ErrEmptyCart = apperrors.ErrEmptyCart

	// ErrUnknownStatus 未知的订单状态
	ErrUnknownStatus = apperrors.ErrInvalidParams.WithField("status", "未知的订单状态")
)
