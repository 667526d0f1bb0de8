// Package checkout 结算：购物车转订单
package checkout

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	"github.com/xiebiao/bookstore-checkout/internal/domain/inventory"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
	"github.com/xiebiao/bookstore-checkout/pkg/metrics"
	"github.com/xiebiao/bookstore-checkout/pkg/tracing"
)

const tracerName = "checkout"

// TxManager 事务管理（mysql.TxManager实现）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CartEngine 结算用到的购物车操作（cart.Engine实现）
type CartEngine interface {
	LockCart(ctx context.Context, cartID string) (*cart.Cart, error)
	UpdateLocked(ctx context.Context, c *cart.Cart, params cart.UpdateParams) (*cart.Cart, error)
}

// CacheInvalidator 按版本作废购物车缓存（redis.CartCache实现）
type CacheInvalidator interface {
	Invalidate(ctx context.Context, cartID string, version int64) error
}

// EventPublisher 订单事件发布
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt order.CreatedEvent) error
}

// UseCase 结算用例
// 教学要点:
// 1. 锁购物车、校验、扣库存、建订单、停用购物车在同一个事务里，任何一步失败全部回滚
// 2. 库存行按book_id升序加锁，两个结算同时扣同一批书时加锁顺序一致，不会死锁
// 3. 缓存删除和事件发布在提交之后，失败只记日志，订单已经生效
type UseCase struct {
	tx        TxManager
	customers customer.Repository
	carts     CartEngine
	stock     inventory.Repository
	orders    order.Repository
	cache     CacheInvalidator
	events    EventPublisher
}

// NewUseCase 创建结算用例
func NewUseCase(
	tx TxManager,
	customers customer.Repository,
	carts CartEngine,
	stock inventory.Repository,
	orders order.Repository,
	cache CacheInvalidator,
	events EventPublisher,
) *UseCase {
	return &UseCase{
		tx:        tx,
		customers: customers,
		carts:     carts,
		stock:     stock,
		orders:    orders,
		cache:     cache,
		events:    events,
	}
}

// Execute 结算
// 成功后购物车变为inactive，返回新建的待支付订单
func (uc *UseCase) Execute(ctx context.Context, userID uint, cartID string) (o *order.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "checkout.Execute")
	defer tracing.EndSpan(span, &err)
	defer metrics.ObserveCartOperation("checkout", time.Now(), &err)
	span.SetAttributes(attribute.String("cart.id", cartID))

	cust, err := uc.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var version int64
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.carts.LockCart(txCtx, cartID)
		if err != nil {
			return err
		}
		if err := cart.ValidateCheckout(c, cust.ID); err != nil {
			return err
		}
		if err := uc.reserveStock(txCtx, c.LineItems); err != nil {
			return err
		}

		o, err = order.NewFromCart(c, order.GenerateOrderNo())
		if err != nil {
			return err
		}
		if err := uc.orders.Create(txCtx, o); err != nil {
			return err
		}

		c, err = uc.carts.UpdateLocked(txCtx, c, cart.UpdateParams{
			Status: cart.Some(cart.StatusInactive),
		})
		if err != nil {
			return err
		}
		version = c.Version
		return nil
	})
	if err != nil {
		if reason, ok := rejectionReason(err); ok {
			metrics.IncCheckoutRejection(reason)
			zap.L().Info("checkout rejected",
				zap.String("cart_id", cartID),
				zap.String("reason", reason),
			)
		}
		return nil, err
	}

	metrics.IncOrdersCreated()
	span.SetAttributes(attribute.String("order.no", o.OrderNo))
	zap.L().Info("order created",
		zap.String("order_no", o.OrderNo),
		zap.String("cart_id", cartID),
		zap.Int64("total", o.Total),
	)

	if err := uc.cache.Invalidate(ctx, cartID, version); err != nil {
		zap.L().Warn("invalidate cart cache failed", zap.String("cart_id", cartID), zap.Error(err))
	}
	// 发布失败已在publisher中记录
	_ = uc.events.PublishOrderCreated(ctx, o.Event())
	return o, nil
}

// reserveStock 锁定库存行并扣减
func (uc *UseCase) reserveStock(ctx context.Context, items []cart.LineItem) error {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b cart.LineItem) int {
		return cmp.Compare(a.BookID, b.BookID)
	})

	for _, item := range sorted {
		inv, err := uc.stock.LockByBookID(ctx, item.BookID)
		if err != nil {
			return err
		}
		if inv.Quantity < item.Quantity {
			return inventory.ErrInsufficientStock
		}
		if err := uc.stock.Decrease(ctx, item.BookID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// rejectionReason 业务原因导致的结算失败返回指标标签，基础设施错误不计入
func rejectionReason(err error) (string, bool) {
	switch {
	case apperrors.IsPrecondition(err):
		return cart.CheckoutReason(err), true
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "insufficient_stock", true
	case apperrors.IsNotFound(err):
		return "not_found", true
	}
	return "", false
}
