// Package cart 购物车应用服务
//
// 设计说明：
// 1. 应用层负责：识别客户、开启事务、校验归属、事务提交后作废缓存、记录指标
// 2. 总价维护、合并明细、库存检查等业务规则都在domain/cart.Engine中
// 3. 别人的购物车一律返回ErrCartNotFound，不暴露购物车是否存在
// 4. 写操作只加锁读取一次购物车，归属校验和Engine的*Locked方法共用这次读取
package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	"github.com/xiebiao/bookstore-checkout/pkg/metrics"
)

// TxManager 事务管理（mysql.TxManager实现）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Engine 购物车领域服务（cart.Engine实现）
type Engine interface {
	CreateCart(ctx context.Context, customerID string) (*cart.Cart, error)
	FindCart(ctx context.Context, cartID string) (*cart.Cart, error)
	LockCart(ctx context.Context, cartID string) (*cart.Cart, error)
	UpdateLocked(ctx context.Context, c *cart.Cart, params cart.UpdateParams) (*cart.Cart, error)
	AddLineItemLocked(ctx context.Context, c *cart.Cart, bookID uint, quantity int) (*cart.Cart, error)
	RemoveLineItemLocked(ctx context.Context, c *cart.Cart, lineItemID string, quantity int) (*cart.Cart, error)
	DeleteLocked(ctx context.Context, c *cart.Cart) error
}

// Lister 按客户列出购物车
type Lister interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*cart.Cart, error)
}

// OrderLookup 按购物车查订单（order.Repository实现）
type OrderLookup interface {
	FindByCartID(ctx context.Context, cartID string) (*order.Order, error)
}

// Cache 购物车读缓存（redis.CartCache实现）
// Set按cart.Version条件写入，Invalidate写入提交后的版本，Delete用于已删除的购物车
type Cache interface {
	Get(ctx context.Context, cartID string) (*cart.Cart, error)
	Set(ctx context.Context, c *cart.Cart) error
	Invalidate(ctx context.Context, cartID string, version int64) error
	Delete(ctx context.Context, cartID string) error
}

// Service 购物车应用服务
type Service struct {
	tx        TxManager
	engine    Engine
	carts     Lister
	customers customer.Repository
	orders    OrderLookup
	cache     Cache
}

// NewService 创建购物车应用服务
func NewService(tx TxManager, engine Engine, carts Lister, customers customer.Repository, orders OrderLookup, cache Cache) *Service {
	return &Service{
		tx:        tx,
		engine:    engine,
		carts:     carts,
		customers: customers,
		orders:    orders,
		cache:     cache,
	}
}

// CreateCart 为当前客户创建空购物车
func (s *Service) CreateCart(ctx context.Context, userID uint) (c *cart.Cart, err error) {
	defer metrics.ObserveCartOperation("create_cart", time.Now(), &err)

	cust, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.engine.CreateCart(txCtx, cust.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCart 查询购物车（先读缓存）
// 缓存读写失败只记日志，回退到数据库
// 回填带着读到的Version，读库期间有写入提交时缓存会拒绝这份旧快照
func (s *Service) GetCart(ctx context.Context, userID uint, cartID string) (c *cart.Cart, err error) {
	defer metrics.ObserveCartOperation("get_cart", time.Now(), &err)

	cust, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cached, cacheErr := s.cache.Get(ctx, cartID)
	if cacheErr == nil {
		if !cached.IsOwnedBy(cust.ID) {
			return nil, cart.ErrCartNotFound
		}
		return cached, nil
	}
	zap.L().Debug("cart cache miss", zap.String("cart_id", cartID), zap.Error(cacheErr))

	c, err = s.engine.FindCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(cust.ID) {
		return nil, cart.ErrCartNotFound
	}
	if err := s.cache.Set(ctx, c); err != nil {
		zap.L().Warn("set cart cache failed", zap.String("cart_id", cartID), zap.Error(err))
	}
	return c, nil
}

// ListCarts 当前客户的全部购物车（不走缓存）
func (s *Service) ListCarts(ctx context.Context, userID uint) (carts []*cart.Cart, err error) {
	defer metrics.ObserveCartOperation("list_carts", time.Now(), &err)

	cust, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carts.ListByCustomer(ctx, cust.ID)
}

// UpdateCart 部分更新状态、地址、配送方式
// 已生成订单的购物车不能改回active，避免同一购物车重复结算
func (s *Service) UpdateCart(ctx context.Context, userID uint, cartID string, params cart.UpdateParams) (c *cart.Cart, err error) {
	defer metrics.ObserveCartOperation("update_cart", time.Now(), &err)

	return s.mutate(ctx, userID, cartID, func(txCtx context.Context, locked *cart.Cart) (*cart.Cart, error) {
		if status, ok := params.Status.Get(); ok && status == cart.StatusActive && locked.Status == cart.StatusInactive {
			if err := s.ensureNotCheckedOut(txCtx, cartID); err != nil {
				return nil, err
			}
		}
		return s.engine.UpdateLocked(txCtx, locked, params)
	})
}

// AddLineItem 加购
func (s *Service) AddLineItem(ctx context.Context, userID uint, cartID string, bookID uint, quantity int) (c *cart.Cart, err error) {
	defer metrics.ObserveCartOperation("add_line_item", time.Now(), &err)

	return s.mutate(ctx, userID, cartID, func(txCtx context.Context, locked *cart.Cart) (*cart.Cart, error) {
		return s.engine.AddLineItemLocked(txCtx, locked, bookID, quantity)
	})
}

// RemoveLineItem 减购，数量不小于当前数量时删除明细
func (s *Service) RemoveLineItem(ctx context.Context, userID uint, cartID, lineItemID string, quantity int) (c *cart.Cart, err error) {
	defer metrics.ObserveCartOperation("remove_line_item", time.Now(), &err)

	return s.mutate(ctx, userID, cartID, func(txCtx context.Context, locked *cart.Cart) (*cart.Cart, error) {
		return s.engine.RemoveLineItemLocked(txCtx, locked, lineItemID, quantity)
	})
}

// DeleteCart 删除购物车及全部明细
func (s *Service) DeleteCart(ctx context.Context, userID uint, cartID string) (err error) {
	defer metrics.ObserveCartOperation("delete_cart", time.Now(), &err)

	_, err = s.mutate(ctx, userID, cartID, func(txCtx context.Context, locked *cart.Cart) (*cart.Cart, error) {
		return nil, s.engine.DeleteLocked(txCtx, locked)
	})
	return err
}

// mutate 写操作的公共流程
// 1. 识别客户
// 2. 事务内锁购物车并校验归属，再把加锁读到的购物车交给fn
// 3. 提交成功后作废缓存：fn返回nil表示购物车已删除
func (s *Service) mutate(ctx context.Context, userID uint, cartID string, fn func(txCtx context.Context, locked *cart.Cart) (*cart.Cart, error)) (*cart.Cart, error) {
	cust, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *cart.Cart
	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		locked, err := s.engine.LockCart(txCtx, cartID)
		if err != nil {
			return err
		}
		if !locked.IsOwnedBy(cust.ID) {
			return cart.ErrCartNotFound
		}
		result, err = fn(txCtx, locked)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cartID, result)
	return result, nil
}

func (s *Service) ensureNotCheckedOut(ctx context.Context, cartID string) error {
	_, err := s.orders.FindByCartID(ctx, cartID)
	switch {
	case err == nil:
		return cart.ErrCartCheckedOut
	case errors.Is(err, order.ErrOrderNotFound):
		return nil
	default:
		return err
	}
}

func (s *Service) invalidate(ctx context.Context, cartID string, c *cart.Cart) {
	var err error
	if c == nil {
		err = s.cache.Delete(ctx, cartID)
	} else {
		err = s.cache.Invalidate(ctx, cartID, c.Version)
	}
	if err != nil {
		zap.L().Warn("invalidate cart cache failed", zap.String("cart_id", cartID), zap.Error(err))
	}
}
