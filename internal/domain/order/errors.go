package order

import (
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidOrderItems 订单明细不合法
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrTotalMismatch 订单总价与明细合计不一致
	ErrTotalMismatch = apperrors.New(apperrors.ErrCodeBusinessError, "订单总价与明细合计不一致")
)
