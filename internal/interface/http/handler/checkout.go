package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-checkout/pkg/response"
)

// CheckoutService 结算用例（checkout.UseCase实现）
type CheckoutService interface {
	Execute(ctx context.Context, userID uint, cartID string) (*order.Order, error)
}

// CheckoutHandler 结算HTTP处理器
type CheckoutHandler struct {
	checkout CheckoutService
}

// NewCheckoutHandler 创建结算处理器
func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout 结算
// @Summary      结算
// @Description  校验购物车并生成待支付订单，成功后购物车变为inactive
// @Tags         结算
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "购物车不存在"
// @Failure      422 {object} response.Response "结算条件不满足（code区分具体原因）"
// @Router       /carts/{id}/checkout [post]
//
// 422的code按检查顺序：
// 42201下单人不一致 → 42202购物车已失效 → 42203缺账单地址 → 42204缺收货地址
// → 42205缺配送方式 → 42206购物车为空 → 42207总价不一致
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	o, err := h.checkout.Execute(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}
