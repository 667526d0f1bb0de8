package book

import (
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrNotPurchasable 图书未定价
	ErrNotPurchasable = apperrors.New(apperrors.ErrCodeBusinessError, "图书暂不可购买")
)
