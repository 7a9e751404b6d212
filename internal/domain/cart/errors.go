package cart

import (
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrCartNotFound     = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车商品不存在")

	// ErrCartExists 并发创建购物车时唯一索引冲突,调用方应重新查询
	ErrCartExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车已存在")

	// ErrItemExists 同一商品的明细已存在(cart_id+product_id唯一)
	ErrItemExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车商品已存在")

	ErrInvalidQuantity    = apperrors.ErrInvalidParams.WithField("quantity", "数量必须在1-99之间")
	ErrProductUnavailable = apperrors.ErrInvalidParams.WithField("product_id", "商品不存在或已下架")
)
