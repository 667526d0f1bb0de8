package cart

import (
	"time"

	"github.com/google/uuid"
)

// Status 购物车状态
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive" // 已转为订单或被用户停用
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// DeliveryMethod 配送方式（空字符串表示未选择）
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
	DeliveryPickup   DeliveryMethod = "pickup"
)

// Valid 是否为合法的配送方式（不含空值）
func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryStandard, DeliveryExpress, DeliveryPickup:
		return true
	}
	return false
}

// Cart 购物车（聚合根）
// 设计说明：
// 1. TotalPrice只能由Engine通过recalculate维护，始终等于明细TotalPrice之和
// 2. 金额单位为分（int64），与图书价格一致
// 3. 地址只保存ID，地址是否存在、是否属于客户由地址服务负责
// 4. Version每次写表头递增，便于排查并发写入
type Cart struct {
	ID                string
	CustomerID        string
	Status            Status
	TotalPrice        int64
	BillingAddressID  string
	ShippingAddressID string
	DeliveryMethod    DeliveryMethod
	LineItems         []LineItem // 按加入顺序
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LineItem 购物车明细
// Price是加购时的单价快照，之后图书调价不影响已加购的明细
type LineItem struct {
	ID         string
	CartID     string
	BookID     uint
	Quantity   int
	Price      int64
	TotalPrice int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCart 创建空购物车（工厂方法）
func NewCart(customerID string) (*Cart, error) {
	if customerID == "" {
		return nil, ErrInvalidCustomer
	}
	now := time.Now()
	return &Cart{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     StatusActive,
		LineItems:  []LineItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func newLineItem(cartID string, bookID uint, quantity int, price int64) LineItem {
	now := time.Now()
	item := LineItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		BookID:    bookID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	item.recalculate()
	return item
}

func (li *LineItem) recalculate() {
	li.TotalPrice = li.Price * int64(li.Quantity)
	li.UpdatedAt = time.Now()
}

// IsOwnedBy 购物车是否属于该客户
func (c *Cart) IsOwnedBy(customerID string) bool {
	return c.CustomerID == customerID
}

// SumLineItems 明细金额合计
func (c *Cart) SumLineItems() int64 {
	var sum int64
	for _, item := range c.LineItems {
		sum += item.TotalPrice
	}
	return sum
}

// ItemCount 图书总件数
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.LineItems {
		n += item.Quantity
	}
	return n
}

// recalculate 重新计算总价（只在Engine中调用）
func (c *Cart) recalculate() {
	c.TotalPrice = c.SumLineItems()
	c.UpdatedAt = time.Now()
}

func (c *Cart) indexOfBook(bookID uint) int {
	for i := range c.LineItems {
		if c.LineItems[i].BookID == bookID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfLineItem(lineItemID string) int {
	for i := range c.LineItems {
		if c.LineItems[i].ID == lineItemID {
			return i
		}
	}
	return -1
}

// apply 部分更新表头字段
// 先校验全部字段再修改，校验失败时购物车保持不变
// Some("")对地址和配送方式表示清空
func (c *Cart) apply(p UpdateParams) error {
	status, hasStatus := p.Status.Get()
	if hasStatus && !status.Valid() {
		return ErrInvalidStatus
	}
	method, hasMethod := p.DeliveryMethod.Get()
	if hasMethod && method != "" && !method.Valid() {
		return ErrInvalidDeliveryMethod
	}

	if hasStatus {
		c.Status = status
	}
	if hasMethod {
		c.DeliveryMethod = method
	}
	if v, ok := p.BillingAddressID.Get(); ok {
		c.BillingAddressID = v
	}
	if v, ok := p.ShippingAddressID.Get(); ok {
		c.ShippingAddressID = v
	}
	c.UpdatedAt = time.Now()
	return nil
}
