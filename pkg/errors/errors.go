package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
// 设计说明：
// 1. Code是稳定的业务错误码，客户端按Code区分处理（如提示补填地址还是配送方式）
// 2. Message是用户可读的提示
// 3. Err是底层错误，只进日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建业务错误
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装基础设施错误（数据库、Redis、MQ），统一归为内部错误
func Wrap(err error, message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Err: err}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 业务规则错误
// - 401xx: 认证授权
// - 404xx: 资源不存在
// - 409xx: 参数错误
// - 422xx: 结算前置条件不满足（每个条件一个码）
// - 5xxxx: 服务端错误

const (
	ErrCodeInternal = 50000 // 内部错误

	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // Token无效
	ErrCodeTokenExpired = 40102 // Token过期
	ErrCodeTokenRevoked = 40103 // Token已登出
	ErrCodeForbidden    = 40104 // 无权限

	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeOrderNotFound    = 40403 // 订单不存在
	ErrCodeCartNotFound     = 40405 // 购物车不存在
	ErrCodeLineItemNotFound = 40406 // 购物车明细不存在
	ErrCodeCustomerNotFound = 40407 // 客户不存在

	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock = 40001 // 库存不足
	ErrCodeQuantityLimit     = 40002 // 单个明细数量超过上限
	ErrCodeCartCheckedOut    = 40003 // 购物车已生成订单，不能重新启用

	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	ErrCodeInvalidQuantity       = 40902 // 数量必须为正整数
	ErrCodeInvalidCustomer       = 40903 // 客户ID为空
	ErrCodeInvalidStatus         = 40904 // 购物车状态不合法
	ErrCodeInvalidDeliveryMethod = 40905 // 配送方式不合法

	ErrCodeOrderCreatorMismatch       = 42201 // 下单人与购物车所属客户不一致
	ErrCodeCartNotActive              = 42202 // 购物车已失效
	ErrCodeBillingAddressNotProvided  = 42203 // 未填写账单地址
	ErrCodeShippingAddressNotProvided = 42204 // 未填写收货地址
	ErrCodeDeliveryMethodNotProvided  = 42205 // 未选择配送方式
	ErrCodeLineItemsNotProvided       = 42206 // 购物车为空
	ErrCodeInvalidTotalPrice          = 42207 // 总价与明细合计不一致
)

var (
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	ErrUnauthorized = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Token已过期")
	ErrTokenRevoked = New(ErrCodeTokenRevoked, "Token已失效，请重新登录")
	ErrForbidden    = New(ErrCodeForbidden, "无权限访问")

	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误码，非AppError视为内部错误
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}

// IsNotFound 资源不存在类错误（404xx）
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code >= 40400 && code < 40500
}

// IsPrecondition 结算前置条件类错误（422xx）
func IsPrecondition(err error) bool {
	code := CodeOf(err)
	return code >= 42200 && code < 42300
}

// HTTPStatus 业务错误码 → HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code >= 40100 && code < 40200:
		if code == ErrCodeForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 42200 && code < 42300:
		return http.StatusUnprocessableEntity
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
