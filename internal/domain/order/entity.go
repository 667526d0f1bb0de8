package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
)

// OrderStatus 订单状态
// 教学要点:
// 1. 本服务只负责把购物车转为待支付订单,支付与履约由下游服务推进
// 2. 状态值与订单服务保持一致(1=待支付)
type OrderStatus int

const (
	OrderStatusPending OrderStatus = 1 // 待支付
)

// String 实现Stringer接口(方便日志输出)
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "待支付"
	default:
		return "未知状态"
	}
}

// Order 订单实体(聚合根)
// 教学要点:
// 1. 由通过结算校验的购物车生成,地址与配送方式从购物车复制
// 2. Total冗余存储,等于明细合计(结算校验已保证)
// 3. CartID记录来源购物车,便于对账
type Order struct {
	ID                string
	OrderNo           string
	CustomerID        string
	CartID            string
	Total             int64
	Status            OrderStatus
	BillingAddressID  string
	ShippingAddressID string
	DeliveryMethod    string
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem 订单明细项
// Price沿用购物车明细的价格快照
type OrderItem struct {
	ID       string
	OrderID  string
	BookID   uint
	Quantity int
	Price    int64
}

// NewFromCart 由购物车生成订单(工厂方法)
// 调用方必须先通过cart.ValidateCheckout
func NewFromCart(c *cart.Cart, orderNo string) (*Order, error) {
	if len(c.LineItems) == 0 {
		return nil, ErrInvalidOrderItems
	}

	now := time.Now()
	o := &Order{
		ID:                uuid.NewString(),
		OrderNo:           orderNo,
		CustomerID:        c.CustomerID,
		CartID:            c.ID,
		Total:             c.TotalPrice,
		Status:            OrderStatusPending,
		BillingAddressID:  c.BillingAddressID,
		ShippingAddressID: c.ShippingAddressID,
		DeliveryMethod:    string(c.DeliveryMethod),
		Items:             make([]OrderItem, 0, len(c.LineItems)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, li := range c.LineItems {
		o.Items = append(o.Items, OrderItem{
			ID:       uuid.NewString(),
			OrderID:  o.ID,
			BookID:   li.BookID,
			Quantity: li.Quantity,
			Price:    li.Price,
		})
	}
	if o.CalculateTotal() != o.Total {
		return nil, ErrTotalMismatch
	}
	return o, nil
}

// CalculateTotal 根据明细计算订单总金额
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定客户
func (o *Order) IsOwnedBy(customerID string) bool {
	return o.CustomerID == customerID
}

// CreatedEvent order.created事件
type CreatedEvent struct {
	OrderID    string    `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	CustomerID string    `json:"customer_id"`
	CartID     string    `json:"cart_id"`
	Total      int64     `json:"total"`
	ItemCount  int       `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event 生成order.created事件
func (o *Order) Event() CreatedEvent {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return CreatedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		CustomerID: o.CustomerID,
		CartID:     o.CartID,
		Total:      o.Total,
		ItemCount:  count,
		CreatedAt:  o.CreatedAt,
	}
}
