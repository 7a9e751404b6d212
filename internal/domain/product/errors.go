package product

import (
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound  = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrSlugDuplicate    = apperrors.New(apperrors.ErrCodeSlugDuplicate, "slug已存在")

	ErrInvalidPrice    = apperrors.ErrInvalidParams.WithField("price", "价格必须大于0")
	ErrInvalidDiscount = apperrors.ErrInvalidParams.WithField("discount_percentage", "折扣必须在0-100之间")
	ErrInvalidName     = apperrors.ErrInvalidParams.WithField("name", "商品名称长度应为1-200个字符")
)
