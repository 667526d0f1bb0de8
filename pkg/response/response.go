package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，客户端据此区分"未找到"和"结算条件不满足"等情况
// 2. HTTP状态码由Code推导（apperrors.HTTPStatus），网关和监控也能直接按状态码统计
// 3. Data只在成功时返回
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(apperrors.HTTPStatus(0), Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误记录原始错误，业务错误不打日志（属于正常分支）
	if appErr.Err != nil || appErr.Code >= apperrors.ErrCodeInternal {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}
