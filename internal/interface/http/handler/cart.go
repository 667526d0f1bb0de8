package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
	"github.com/xiebiao/bookstore-checkout/pkg/response"
)

// CartService 购物车应用服务（appcart.Service实现）
type CartService interface {
	CreateCart(ctx context.Context, userID uint) (*cart.Cart, error)
	GetCart(ctx context.Context, userID uint, cartID string) (*cart.Cart, error)
	ListCarts(ctx context.Context, userID uint) ([]*cart.Cart, error)
	UpdateCart(ctx context.Context, userID uint, cartID string, params cart.UpdateParams) (*cart.Cart, error)
	AddLineItem(ctx context.Context, userID uint, cartID string, bookID uint, quantity int) (*cart.Cart, error)
	RemoveLineItem(ctx context.Context, userID uint, cartID, lineItemID string, quantity int) (*cart.Cart, error)
	DeleteCart(ctx context.Context, userID uint, cartID string) error
}

// CartHandler 购物车HTTP处理器
// Handler只做参数绑定和响应转换，归属校验、事务、缓存都在应用层
type CartHandler struct {
	svc CartService
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// CreateCart 创建购物车
// @Summary      创建购物车
// @Description  为当前登录客户创建一个空的购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse} "创建成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /carts [post]
func (h *CartHandler) CreateCart(c *gin.Context) {
	result, err := h.svc.CreateCart(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// ListCarts 购物车列表
// @Summary      购物车列表
// @Description  当前客户的全部购物车，按创建时间倒序
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.CartResponse} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /carts [get]
func (h *CartHandler) ListCarts(c *gin.Context) {
	carts, err := h.svc.ListCarts(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartListResponse(carts))
}

// GetCart 购物车详情
// @Summary      购物车详情
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车ID"
// @Success      200 {object} response.Response{data=dto.CartResponse} "查询成功"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/{id} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.svc.GetCart(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// UpdateCart 修改购物车
// @Summary      修改购物车
// @Description  部分更新状态、账单地址、收货地址、配送方式；未传的字段保持不变，传空字符串清空
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "购物车ID"
// @Param        request body dto.UpdateCartRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.CartResponse} "修改成功"
// @Failure      400 {object} response.Response "状态或配送方式不合法，或把已结算的购物车改回active"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/{id} [patch]
func (h *CartHandler) UpdateCart(c *gin.Context) {
	var req dto.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.svc.UpdateCart(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), req.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// DeleteCart 删除购物车
// @Summary      删除购物车
// @Description  删除购物车及其全部明细
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/{id} [delete]
func (h *CartHandler) DeleteCart(c *gin.Context) {
	if err := h.svc.DeleteCart(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AddLineItem 加购
// @Summary      加购
// @Description  同一本书合并为一条明细；合并后的数量不能超过可用库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                 true "购物车ID"
// @Param        request body dto.AddLineItemRequest true "图书和数量"
// @Success      200 {object} response.Response{data=dto.CartResponse} "加购成功"
// @Failure      400 {object} response.Response "数量不合法或库存不足"
// @Failure      404 {object} response.Response "购物车或图书不存在"
// @Router       /carts/{id}/line-items [post]
func (h *CartHandler) AddLineItem(c *gin.Context) {
	var req dto.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.svc.AddLineItem(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// RemoveLineItem 减购
// @Summary      减购
// @Description  减少明细数量；数量不小于当前数量时删除整条明细
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                    true "购物车ID"
// @Param        itemId  path string                    true "明细ID"
// @Param        request body dto.RemoveLineItemRequest true "减少的数量"
// @Success      200 {object} response.Response{data=dto.CartResponse} "减购成功"
// @Failure      400 {object} response.Response "数量不合法"
// @Failure      404 {object} response.Response "购物车或明细不存在"
// @Router       /carts/{id}/line-items/{itemId} [delete]
func (h *CartHandler) RemoveLineItem(c *gin.Context) {
	var req dto.RemoveLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.svc.RemoveLineItem(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), c.Param("itemId"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}
