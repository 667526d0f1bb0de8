package cart

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookstore-checkout/internal/domain/book"
	"github.com/xiebiao/bookstore-checkout/pkg/tracing"
)

const tracerName = "cart-engine"

// Engine 购物车领域服务
// 设计说明:
// 1. 修改明细和总价的唯一入口，每个公开方法返回时TotalPrice都等于明细合计
// 2. Engine不开启事务，由调用方（应用层）用TxManager.Transaction包裹，
//    这样加购、结算扣库存等写操作可以和其他仓储写入放在同一个事务里
// 3. 加购、减购、更新前先对购物车行加排他锁，避免并发读改写丢失总价
type Engine struct {
	carts       Repository
	items       LineItemRepository
	books       BookLookup
	stock       StockLookup
	maxQuantity int
}

// Option Engine可选配置
type Option func(*Engine)

// WithMaxQuantity 单个明细的数量上限，<=0表示不限制
func WithMaxQuantity(n int) Option {
	return func(e *Engine) {
		e.maxQuantity = n
	}
}

// NewEngine 创建购物车领域服务
func NewEngine(carts Repository, items LineItemRepository, books BookLookup, stock StockLookup, opts ...Option) *Engine {
	e := &Engine{carts: carts, items: items, books: books, stock: stock}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateCart 为客户创建空购物车
func (e *Engine) CreateCart(ctx context.Context, customerID string) (c *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.CreateCart")
	defer tracing.EndSpan(span, &err)

	c, err = NewCart(customerID)
	if err != nil {
		return nil, err
	}
	if err = e.carts.Create(ctx, c); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("cart.id", c.ID))
	return c, nil
}

// FindCart 查询购物车及明细
func (e *Engine) FindCart(ctx context.Context, cartID string) (c *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.FindCart")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("cart.id", cartID))

	return e.carts.FindByID(ctx, cartID)
}

// LockCart 加行锁读取购物车（结算使用）
func (e *Engine) LockCart(ctx context.Context, cartID string) (c *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.LockCart")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("cart.id", cartID))

	return e.carts.LockByID(ctx, cartID)
}

// UpdateCart 部分更新表头字段，未提供的字段保持不变
func (e *Engine) UpdateCart(ctx context.Context, cartID string, params UpdateParams) (*Cart, error) {
	c, err := e.LockCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return e.UpdateLocked(ctx, c, params)
}

// UpdateLocked 对已加锁的购物车做部分更新
// c必须是当前事务中LockCart的返回值，下面几个*Locked方法同理
func (e *Engine) UpdateLocked(ctx context.Context, c *Cart, params UpdateParams) (_ *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.UpdateCart")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("cart.id", c.ID))

	if params.IsEmpty() {
		return c, nil
	}
	if err = c.apply(params); err != nil {
		return nil, err
	}
	if err = e.carts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddLineItem 加购
// 业务规则:
// 1. 同一本书合并为一条明细，保留首次加购时的价格快照
// 2. 合并后的数量不能超过可用库存和数量上限
func (e *Engine) AddLineItem(ctx context.Context, cartID string, bookID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	c, err := e.LockCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return e.AddLineItemLocked(ctx, c, bookID, quantity)
}

// AddLineItemLocked 向已加锁的购物车加购
func (e *Engine) AddLineItemLocked(ctx context.Context, c *Cart, bookID uint, quantity int) (_ *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.AddLineItem")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(
		attribute.String("cart.id", c.ID),
		attribute.Int64("book.id", int64(bookID)),
		attribute.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	b, err := e.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !b.IsPurchasable() {
		return nil, book.ErrNotPurchasable
	}

	idx := c.indexOfBook(bookID)
	merged := quantity
	if idx >= 0 {
		existing := c.LineItems[idx].Quantity
		// 合并数量溢出时按超过上限处理
		if quantity > math.MaxInt-existing {
			return nil, ErrQuantityLimitExceeded
		}
		merged += existing
	}
	if e.maxQuantity > 0 && merged > e.maxQuantity {
		return nil, ErrQuantityLimitExceeded
	}
	if err = e.checkStock(ctx, bookID, merged); err != nil {
		return nil, err
	}

	if idx >= 0 {
		item := &c.LineItems[idx]
		item.Quantity = merged
		item.recalculate()
		if err = e.items.Update(ctx, item); err != nil {
			return nil, err
		}
	} else {
		item := newLineItem(c.ID, bookID, quantity, b.Price)
		if err = e.items.Create(ctx, &item); err != nil {
			return nil, err
		}
		c.LineItems = append(c.LineItems, item)
	}

	c.recalculate()
	if err = e.carts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveLineItem 减购
// quantity大于等于当前数量时删除整条明细，不会出现数量<=0的明细
func (e *Engine) RemoveLineItem(ctx context.Context, cartID, lineItemID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	c, err := e.LockCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return e.RemoveLineItemLocked(ctx, c, lineItemID, quantity)
}

// RemoveLineItemLocked 从已加锁的购物车减购
func (e *Engine) RemoveLineItemLocked(ctx context.Context, c *Cart, lineItemID string, quantity int) (_ *Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.RemoveLineItem")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(
		attribute.String("cart.id", c.ID),
		attribute.String("line_item.id", lineItemID),
		attribute.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	idx := c.indexOfLineItem(lineItemID)
	if idx < 0 {
		return nil, ErrLineItemNotFound
	}

	item := &c.LineItems[idx]
	if quantity >= item.Quantity {
		if err = e.items.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		c.LineItems = append(c.LineItems[:idx], c.LineItems[idx+1:]...)
	} else {
		item.Quantity -= quantity
		item.recalculate()
		if err = e.items.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	c.recalculate()
	if err = e.carts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCart 删除购物车及其明细
func (e *Engine) DeleteCart(ctx context.Context, cartID string) error {
	c, err := e.LockCart(ctx, cartID)
	if err != nil {
		return err
	}
	return e.DeleteLocked(ctx, c)
}

// DeleteLocked 删除已加锁的购物车
func (e *Engine) DeleteLocked(ctx context.Context, c *Cart) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart.DeleteCart")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("cart.id", c.ID))

	return e.carts.Delete(ctx, c.ID)
}

func (e *Engine) checkStock(ctx context.Context, bookID uint, want int) error {
	if e.stock == nil {
		return nil
	}
	available, err := e.stock.Available(ctx, bookID)
	if err != nil {
		return err
	}
	if want > available {
		return ErrInsufficientStock
	}
	return nil
}
