package cart

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
)

// txMock 直接在当前ctx中执行fn，记录调用次数
type txMock struct{ mock.Mock }

func (m *txMock) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

type engineMock struct{ mock.Mock }

func (m *engineMock) CreateCart(ctx context.Context, customerID string) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *engineMock) FindCart(ctx context.Context, cartID string) (*cart.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *engineMock) LockCart(ctx context.Context, cartID string) (*cart.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *engineMock) UpdateLocked(ctx context.Context, c *cart.Cart, params cart.UpdateParams) (*cart.Cart, error) {
	args := m.Called(ctx, c.ID, params)
	out, _ := args.Get(0).(*cart.Cart)
	return out, args.Error(1)
}

func (m *engineMock) AddLineItemLocked(ctx context.Context, c *cart.Cart, bookID uint, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, c.ID, bookID, quantity)
	out, _ := args.Get(0).(*cart.Cart)
	return out, args.Error(1)
}

func (m *engineMock) RemoveLineItemLocked(ctx context.Context, c *cart.Cart, lineItemID string, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, c.ID, lineItemID, quantity)
	out, _ := args.Get(0).(*cart.Cart)
	return out, args.Error(1)
}

func (m *engineMock) DeleteLocked(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c.ID).Error(0)
}

type listerMock struct{ mock.Mock }

func (m *listerMock) ListByCustomer(ctx context.Context, customerID string) ([]*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	carts, _ := args.Get(0).([]*cart.Cart)
	return carts, args.Error(1)
}

type customerMock struct{ mock.Mock }

func (m *customerMock) FindByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type orderMock struct{ mock.Mock }

func (m *orderMock) FindByCartID(ctx context.Context, cartID string) (*order.Order, error) {
	args := m.Called(ctx, cartID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type cacheMock struct{ mock.Mock }

func (m *cacheMock) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *cacheMock) Set(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *cacheMock) Invalidate(ctx context.Context, cartID string, version int64) error {
	return m.Called(ctx, cartID, version).Error(0)
}

func (m *cacheMock) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}
