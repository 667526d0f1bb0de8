package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	cartcache "github.com/xiebiao/bookstore-checkout/internal/infrastructure/persistence/redis"
)

const (
	userID     uint = 7
	customerID      = "cust-7"
)

type fixture struct {
	tx        *txMock
	engine    *engineMock
	lister    *listerMock
	customers *customerMock
	orders    *orderMock
	cache     *cacheMock
	svc       *Service
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, nil)
}

// newFixtureWithCache cache为nil时使用cacheMock
func newFixtureWithCache(t *testing.T, cache Cache) *fixture {
	f := &fixture{
		tx:        &txMock{},
		engine:    &engineMock{},
		lister:    &listerMock{},
		customers: &customerMock{},
		orders:    &orderMock{},
		cache:     &cacheMock{},
	}
	if cache == nil {
		cache = f.cache
	}
	f.svc = NewService(f.tx, f.engine, f.lister, f.customers, f.orders, cache)
	f.customers.On("FindByUserID", mock.Anything, userID).
		Return(&customer.Customer{ID: customerID, UserID: userID}, nil).Maybe()
	f.tx.On("Transaction", mock.Anything).Maybe()
	t.Cleanup(func() {
		f.engine.AssertExpectations(t)
		f.cache.AssertExpectations(t)
		f.lister.AssertExpectations(t)
		f.orders.AssertExpectations(t)
	})
	return f
}

func ownCart() *cart.Cart {
	return &cart.Cart{ID: "c-1", CustomerID: customerID, Status: cart.StatusActive}
}

func foreignCart() *cart.Cart {
	return &cart.Cart{ID: "c-1", CustomerID: "someone-else", Status: cart.StatusActive}
}

func TestService_CreateCart(t *testing.T) {
	f := newFixture(t)
	f.engine.On("CreateCart", mock.Anything, customerID).Return(ownCart(), nil)

	c, err := f.svc.CreateCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, customerID, c.CustomerID)
	f.tx.AssertNumberOfCalls(t, "Transaction", 1)
}

func TestService_CreateCart_UnknownCustomer(t *testing.T) {
	f := newFixture(t)
	f.customers.On("FindByUserID", mock.Anything, uint(99)).Return(nil, customer.ErrCustomerNotFound)

	_, err := f.svc.CreateCart(context.Background(), 99)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	f.tx.AssertNotCalled(t, "Transaction", mock.Anything)
}

func TestService_GetCart_CacheHit(t *testing.T) {
	f := newFixture(t)
	f.cache.On("Get", mock.Anything, "c-1").Return(ownCart(), nil)

	c, err := f.svc.GetCart(context.Background(), userID, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
	f.engine.AssertNotCalled(t, "FindCart", mock.Anything, mock.Anything)
}

func TestService_GetCart_CacheMissFillsCache(t *testing.T) {
	f := newFixture(t)
	own := ownCart()
	f.cache.On("Get", mock.Anything, "c-1").Return(nil, errors.New("miss"))
	f.engine.On("FindCart", mock.Anything, "c-1").Return(own, nil)
	f.cache.On("Set", mock.Anything, own).Return(nil)

	c, err := f.svc.GetCart(context.Background(), userID, "c-1")
	require.NoError(t, err)
	assert.Same(t, own, c)
}

func TestService_GetCart_CacheSetFailureIgnored(t *testing.T) {
	f := newFixture(t)
	own := ownCart()
	f.cache.On("Get", mock.Anything, "c-1").Return(nil, errors.New("redis down"))
	f.engine.On("FindCart", mock.Anything, "c-1").Return(own, nil)
	f.cache.On("Set", mock.Anything, own).Return(errors.New("redis down"))

	_, err := f.svc.GetCart(context.Background(), userID, "c-1")
	assert.NoError(t, err)
}

func TestService_GetCart_ForeignCartHidden(t *testing.T) {
	t.Run("from cache", func(t *testing.T) {
		f := newFixture(t)
		f.cache.On("Get", mock.Anything, "c-1").Return(foreignCart(), nil)

		_, err := f.svc.GetCart(context.Background(), userID, "c-1")
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	t.Run("from db", func(t *testing.T) {
		f := newFixture(t)
		f.cache.On("Get", mock.Anything, "c-1").Return(nil, errors.New("miss"))
		f.engine.On("FindCart", mock.Anything, "c-1").Return(foreignCart(), nil)

		_, err := f.svc.GetCart(context.Background(), userID, "c-1")
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})
}

func TestService_ListCarts(t *testing.T) {
	f := newFixture(t)
	f.lister.On("ListByCustomer", mock.Anything, customerID).Return([]*cart.Cart{ownCart()}, nil)

	carts, err := f.svc.ListCarts(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, carts, 1)
}

// 读库与回填之间有加购提交，缓存不能留下旧快照
func TestService_GetCart_ConcurrentMutationDoesNotCacheStaleSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixtureWithCache(t, cartcache.NewCartCache(client, time.Minute))
	ctx := context.Background()

	stale := ownCart()
	stale.Version = 2
	updated := ownCart()
	updated.Version = 3
	updated.TotalPrice = 5000
	updated.LineItems = []cart.LineItem{{ID: "li-1", CartID: "c-1", BookID: 1, Quantity: 2, Price: 2500, TotalPrice: 5000}}

	f.engine.On("LockCart", mock.Anything, "c-1").Return(stale, nil).Once()
	f.engine.On("AddLineItemLocked", mock.Anything, "c-1", uint(1), 2).Return(updated, nil).Once()
	f.engine.On("FindCart", mock.Anything, "c-1").
		Run(func(mock.Arguments) {
			_, err := f.svc.AddLineItem(ctx, userID, "c-1", 1, 2)
			require.NoError(t, err)
		}).
		Return(stale, nil).Once()
	f.engine.On("FindCart", mock.Anything, "c-1").Return(updated, nil).Once()

	// 第一次读到的是提交前的快照
	c, err := f.svc.GetCart(ctx, userID, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.TotalPrice)

	// 旧快照没有进缓存，第二次回源拿到新数据
	c, err = f.svc.GetCart(ctx, userID, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), c.TotalPrice)
	require.Len(t, c.LineItems, 1)

	// 第三次命中缓存中的新版本，不再回源
	c, err = f.svc.GetCart(ctx, userID, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Version)
	f.engine.AssertNumberOfCalls(t, "FindCart", 2)
}

func TestService_AddLineItem_InvalidatesCacheAfterCommit(t *testing.T) {
	f := newFixture(t)
	updated := ownCart()
	updated.TotalPrice = 5000
	updated.Version = 1
	f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil).Once()
	f.engine.On("AddLineItemLocked", mock.Anything, "c-1", uint(1), 2).Return(updated, nil)
	f.cache.On("Invalidate", mock.Anything, "c-1", int64(1)).Return(nil)

	c, err := f.svc.AddLineItem(context.Background(), userID, "c-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), c.TotalPrice)
	f.tx.AssertNumberOfCalls(t, "Transaction", 1)
	f.engine.AssertNumberOfCalls(t, "LockCart", 1)
}

func TestService_AddLineItem_DomainErrorKeepsCache(t *testing.T) {
	f := newFixture(t)
	f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil)
	f.engine.On("AddLineItemLocked", mock.Anything, "c-1", uint(1), 0).Return(nil, cart.ErrInvalidQuantity)

	_, err := f.svc.AddLineItem(context.Background(), userID, "c-1", 1, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Mutations_ForeignCartHidden(t *testing.T) {
	ctx := context.Background()
	calls := map[string]func(s *Service) error{
		"update": func(s *Service) error {
			_, err := s.UpdateCart(ctx, userID, "c-1", cart.UpdateParams{Status: cart.Some(cart.StatusInactive)})
			return err
		},
		"add": func(s *Service) error {
			_, err := s.AddLineItem(ctx, userID, "c-1", 1, 1)
			return err
		},
		"remove": func(s *Service) error {
			_, err := s.RemoveLineItem(ctx, userID, "c-1", "li-1", 1)
			return err
		},
		"delete": func(s *Service) error {
			return s.DeleteCart(ctx, userID, "c-1")
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.engine.On("LockCart", mock.Anything, "c-1").Return(foreignCart(), nil)

			assert.ErrorIs(t, call(f.svc), cart.ErrCartNotFound)
			f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
			f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateCart(t *testing.T) {
	f := newFixture(t)
	params := cart.UpdateParams{DeliveryMethod: cart.Some(cart.DeliveryPickup)}
	updated := ownCart()
	updated.DeliveryMethod = cart.DeliveryPickup
	updated.Version = 4
	f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil).Once()
	f.engine.On("UpdateLocked", mock.Anything, "c-1", params).Return(updated, nil)
	f.cache.On("Invalidate", mock.Anything, "c-1", int64(4)).Return(nil)

	c, err := f.svc.UpdateCart(context.Background(), userID, "c-1", params)
	require.NoError(t, err)
	assert.Equal(t, cart.DeliveryPickup, c.DeliveryMethod)
}

func TestService_UpdateCart_Reactivate(t *testing.T) {
	activate := cart.UpdateParams{Status: cart.Some(cart.StatusActive)}
	inactiveCart := func() *cart.Cart {
		c := ownCart()
		c.Status = cart.StatusInactive
		return c
	}

	t.Run("已结算的购物车不能重新启用", func(t *testing.T) {
		f := newFixture(t)
		f.engine.On("LockCart", mock.Anything, "c-1").Return(inactiveCart(), nil)
		f.orders.On("FindByCartID", mock.Anything, "c-1").Return(&order.Order{ID: "o-1", CartID: "c-1"}, nil)

		_, err := f.svc.UpdateCart(context.Background(), userID, "c-1", activate)
		assert.ErrorIs(t, err, cart.ErrCartCheckedOut)
		f.engine.AssertNotCalled(t, "UpdateLocked", mock.Anything, mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("用户停用的购物车可以重新启用", func(t *testing.T) {
		f := newFixture(t)
		f.engine.On("LockCart", mock.Anything, "c-1").Return(inactiveCart(), nil)
		f.orders.On("FindByCartID", mock.Anything, "c-1").Return(nil, order.ErrOrderNotFound)
		f.engine.On("UpdateLocked", mock.Anything, "c-1", activate).Return(ownCart(), nil)
		f.cache.On("Invalidate", mock.Anything, "c-1", int64(0)).Return(nil)

		c, err := f.svc.UpdateCart(context.Background(), userID, "c-1", activate)
		require.NoError(t, err)
		assert.Equal(t, cart.StatusActive, c.Status)
	})

	t.Run("查询订单失败", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("db down")
		f.engine.On("LockCart", mock.Anything, "c-1").Return(inactiveCart(), nil)
		f.orders.On("FindByCartID", mock.Anything, "c-1").Return(nil, boom)

		_, err := f.svc.UpdateCart(context.Background(), userID, "c-1", activate)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("active购物车不查订单", func(t *testing.T) {
		f := newFixture(t)
		f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil)
		f.engine.On("UpdateLocked", mock.Anything, "c-1", activate).Return(ownCart(), nil)
		f.cache.On("Invalidate", mock.Anything, "c-1", int64(0)).Return(nil)

		_, err := f.svc.UpdateCart(context.Background(), userID, "c-1", activate)
		require.NoError(t, err)
		f.orders.AssertNotCalled(t, "FindByCartID", mock.Anything, mock.Anything)
	})
}

func TestService_RemoveLineItem(t *testing.T) {
	f := newFixture(t)
	f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil).Once()
	f.engine.On("RemoveLineItemLocked", mock.Anything, "c-1", "li-1", 3).Return(ownCart(), nil)
	f.cache.On("Invalidate", mock.Anything, "c-1", int64(0)).Return(nil)

	_, err := f.svc.RemoveLineItem(context.Background(), userID, "c-1", "li-1", 3)
	require.NoError(t, err)
}

func TestService_DeleteCart_CacheFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.engine.On("LockCart", mock.Anything, "c-1").Return(ownCart(), nil).Once()
	f.engine.On("DeleteLocked", mock.Anything, "c-1").Return(nil)
	f.cache.On("Delete", mock.Anything, "c-1").Return(errors.New("redis down"))

	assert.NoError(t, f.svc.DeleteCart(context.Background(), userID, "c-1"))
}

func TestService_DeleteCart_NotFound(t *testing.T) {
	f := newFixture(t)
	f.engine.On("LockCart", mock.Anything, "missing").Return(nil, cart.ErrCartNotFound)

	assert.ErrorIs(t, f.svc.DeleteCart(context.Background(), userID, "missing"), cart.ErrCartNotFound)
}
