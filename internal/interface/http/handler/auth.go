package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-checkout/pkg/response"
)

// TokenRevoker 将Token加入黑名单（redis.TokenBlacklist实现）
type TokenRevoker interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// AuthHandler 登出
// 登录和签发Token由用户服务负责，本服务只校验Token
type AuthHandler struct {
	revoker TokenRevoker
}

// NewAuthHandler 创建登出处理器
func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{revoker: revoker}
}

// Logout 登出
// @Summary      登出
// @Description  当前Token加入黑名单，有效期内不能再访问购物车接口
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, expiresAt := middleware.GetToken(c)
	if err := h.revoker.Add(c.Request.Context(), token, time.Until(expiresAt)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
