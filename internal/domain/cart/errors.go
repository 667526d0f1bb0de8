package cart

import (
	"github.com/xiebiao/bookstore-checkout/internal/domain/inventory"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在（不属于当前客户的购物车也返回此错误）
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrLineItemNotFound 购物车中没有该明细
	ErrLineItemNotFound = apperrors.New(apperrors.ErrCodeLineItemNotFound, "购物车明细不存在")

	ErrInvalidQuantity       = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须为正整数")
	ErrInvalidCustomer       = apperrors.New(apperrors.ErrCodeInvalidCustomer, "客户ID不能为空")
	ErrInvalidStatus         = apperrors.New(apperrors.ErrCodeInvalidStatus, "购物车状态只能是active或inactive")
	ErrInvalidDeliveryMethod = apperrors.New(apperrors.ErrCodeInvalidDeliveryMethod, "配送方式只能是standard、express或pickup")

	// ErrInsufficientStock 加购后数量超过可用库存
	ErrInsufficientStock = inventory.ErrInsufficientStock

	// ErrQuantityLimitExceeded 单个明细数量超过上限（cart.max_quantity）
	ErrQuantityLimitExceeded = apperrors.New(apperrors.ErrCodeQuantityLimit, "单本图书购买数量超过上限")

	// ErrCartCheckedOut 已结算的购物车不能重新启用（否则同一购物车会再生成一张订单）
	ErrCartCheckedOut = apperrors.New(apperrors.ErrCodeCartCheckedOut, "购物车已结算，不能重新启用")
)

// 结算前置条件错误
// 每个条件一个错误码，客户端据此提示用户补全对应信息
var (
	ErrOrderCreatorMismatch       = apperrors.New(apperrors.ErrCodeOrderCreatorMismatch, "只能结算自己的购物车")
	ErrCartNotActive              = apperrors.New(apperrors.ErrCodeCartNotActive, "购物车已失效")
	ErrBillingAddressNotProvided  = apperrors.New(apperrors.ErrCodeBillingAddressNotProvided, "请填写账单地址")
	ErrShippingAddressNotProvided = apperrors.New(apperrors.ErrCodeShippingAddressNotProvided, "请填写收货地址")
	ErrDeliveryMethodNotProvided  = apperrors.New(apperrors.ErrCodeDeliveryMethodNotProvided, "请选择配送方式")
	ErrLineItemsNotProvided       = apperrors.New(apperrors.ErrCodeLineItemsNotProvided, "购物车为空")
	ErrInvalidTotalPrice          = apperrors.New(apperrors.ErrCodeInvalidTotalPrice, "购物车总价与明细合计不一致")
)
