package dto

import (
	"fmt"
	"time"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
)

const timeLayout = "2006-01-02 15:04:05"

// UpdateCartRequest 购物车部分更新请求
// 字段为指针：不传表示不修改，传空字符串表示清空地址或配送方式
type UpdateCartRequest struct {
	Status            *string `json:"status" example:"active"`
	BillingAddressID  *string `json:"billing_address_id" binding:"omitempty,max=36" example:"6f1c2b1e-8a55-4c1b-9d7e-0a4b1d2f3c4d"`
	ShippingAddressID *string `json:"shipping_address_id" binding:"omitempty,max=36" example:"0b7d7a56-4a52-44f0-8b0f-5d8b77f0c1aa"`
	DeliveryMethod    *string `json:"delivery_method" example:"express"`
}

// ToParams 转换为领域层部分更新参数
// 状态和配送方式的取值由领域层校验，返回ErrInvalidStatus/ErrInvalidDeliveryMethod
func (r UpdateCartRequest) ToParams() cart.UpdateParams {
	return cart.UpdateParams{
		Status:            cart.FromPtr(convertPtr[cart.Status](r.Status)),
		BillingAddressID:  cart.FromPtr(r.BillingAddressID),
		ShippingAddressID: cart.FromPtr(r.ShippingAddressID),
		DeliveryMethod:    cart.FromPtr(convertPtr[cart.DeliveryMethod](r.DeliveryMethod)),
	}
}

func convertPtr[T ~string](p *string) *T {
	if p == nil {
		return nil
	}
	v := T(*p)
	return &v
}

// AddLineItemRequest 加购请求
// 非正数由领域层返回ErrInvalidQuantity，绑定层只拦截超大数量
type AddLineItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"max=10000" example:"2"`
}

// RemoveLineItemRequest 减购请求
// quantity不小于当前数量时删除整条明细
type RemoveLineItemRequest struct {
	Quantity int `json:"quantity" example:"1"`
}

// LineItemResponse 购物车明细
type LineItemResponse struct {
	ID         string `json:"id" example:"2b0e5b8e-3c0f-4d8e-9d59-8a9c2f6b1e11"`
	BookID     uint   `json:"book_id" example:"1"`
	Quantity   int    `json:"quantity" example:"2"`
	Price      int64  `json:"price" example:"2500"`       // 加购时单价(分)
	TotalPrice int64  `json:"total_price" example:"5000"` // 小计(分)
	TotalYuan  string `json:"total_yuan" example:"50.00"`
}

// CartResponse 购物车
type CartResponse struct {
	ID                string             `json:"id" example:"9d4b7c1a-1f2e-4b3c-8d9e-0a1b2c3d4e5f"`
	CustomerID        string             `json:"customer_id"`
	Status            string             `json:"status" example:"active"`
	TotalPrice        int64              `json:"total_price" example:"5000"`
	TotalYuan         string             `json:"total_yuan" example:"50.00"`
	BillingAddressID  string             `json:"billing_address_id"`
	ShippingAddressID string             `json:"shipping_address_id"`
	DeliveryMethod    string             `json:"delivery_method" example:"standard"`
	ItemCount         int                `json:"item_count" example:"2"`
	LineItems         []LineItemResponse `json:"line_items"`
	CreatedAt         string             `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt         string             `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// NewCartResponse 领域对象 → HTTP响应
func NewCartResponse(c *cart.Cart) *CartResponse {
	items := make([]LineItemResponse, len(c.LineItems))
	for i, li := range c.LineItems {
		items[i] = LineItemResponse{
			ID:         li.ID,
			BookID:     li.BookID,
			Quantity:   li.Quantity,
			Price:      li.Price,
			TotalPrice: li.TotalPrice,
			TotalYuan:  FormatPriceYuan(li.TotalPrice),
		}
	}
	return &CartResponse{
		ID:                c.ID,
		CustomerID:        c.CustomerID,
		Status:            string(c.Status),
		TotalPrice:        c.TotalPrice,
		TotalYuan:         FormatPriceYuan(c.TotalPrice),
		BillingAddressID:  c.BillingAddressID,
		ShippingAddressID: c.ShippingAddressID,
		DeliveryMethod:    string(c.DeliveryMethod),
		ItemCount:         c.ItemCount(),
		LineItems:         items,
		CreatedAt:         formatTime(c.CreatedAt),
		UpdatedAt:         formatTime(c.UpdatedAt),
	}
}

// NewCartListResponse 购物车列表
func NewCartListResponse(carts []*cart.Cart) []*CartResponse {
	list := make([]*CartResponse, len(carts))
	for i, c := range carts {
		list[i] = NewCartResponse(c)
	}
	return list
}

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	BookID   uint  `json:"book_id" example:"1"`
	Quantity int   `json:"quantity" example:"2"`
	Price    int64 `json:"price" example:"2500"`
}

// OrderResponse 结算生成的订单
type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	OrderNo        string              `json:"order_no" example:"ORD20240115103000123456"`
	CartID         string              `json:"cart_id"`
	Total          int64               `json:"total" example:"5000"`
	TotalYuan      string              `json:"total_yuan" example:"50.00"`
	Status         string              `json:"status" example:"待支付"`
	DeliveryMethod string              `json:"delivery_method" example:"standard"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      string              `json:"created_at" example:"2024-01-15 10:30:00"`
}

// NewOrderResponse 领域对象 → HTTP响应
func NewOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}
	return &OrderResponse{
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		CartID:         o.CartID,
		Total:          o.Total,
		TotalYuan:      FormatPriceYuan(o.Total),
		Status:         o.Status.String(),
		DeliveryMethod: o.DeliveryMethod,
		Items:          items,
		CreatedAt:      formatTime(o.CreatedAt),
	}
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	sign := ""
	if priceFen < 0 {
		sign = "-"
		priceFen = -priceFen
	}
	return fmt.Sprintf("%s%d.%02d", sign, priceFen/100, priceFen%100)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
