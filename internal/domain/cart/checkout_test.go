package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// readyCart 满足全部结算条件的购物车
func readyCart() *Cart {
	c := &Cart{
		ID:                "cart-1",
		CustomerID:        "C1",
		Status:            StatusActive,
		BillingAddressID:  "addr-bill",
		ShippingAddressID: "addr-ship",
		DeliveryMethod:    DeliveryStandard,
		LineItems: []LineItem{
			{ID: "li-1", BookID: 1, Quantity: 2, Price: 2500, TotalPrice: 5000},
			{ID: "li-2", BookID: 2, Quantity: 1, Price: 1200, TotalPrice: 1200},
		},
	}
	c.TotalPrice = c.SumLineItems()
	return c
}

func TestValidateCheckout(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *Cart)
		customerID string
		wantErr    error
	}{
		{"全部满足", func(c *Cart) {}, "C1", nil},
		{"非本人购物车", func(c *Cart) {}, "C2", ErrOrderCreatorMismatch},
		{"购物车已失效", func(c *Cart) { c.Status = StatusInactive }, "C1", ErrCartNotActive},
		{"缺账单地址", func(c *Cart) { c.BillingAddressID = "" }, "C1", ErrBillingAddressNotProvided},
		{"缺收货地址", func(c *Cart) { c.ShippingAddressID = "" }, "C1", ErrShippingAddressNotProvided},
		{"缺配送方式", func(c *Cart) { c.DeliveryMethod = "" }, "C1", ErrDeliveryMethodNotProvided},
		{"空购物车", func(c *Cart) { c.LineItems = nil; c.TotalPrice = 0 }, "C1", ErrLineItemsNotProvided},
		{"总价不一致", func(c *Cart) { c.TotalPrice++ }, "C1", ErrInvalidTotalPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := readyCart()
			tt.mutate(c)
			err := ValidateCheckout(c, tt.customerID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// 同时不满足多个条件时只返回顺序上的第一个
func TestValidateCheckout_FirstFailureWins(t *testing.T) {
	c := readyCart()
	c.BillingAddressID = ""
	c.TotalPrice = 1
	assert.ErrorIs(t, ValidateCheckout(c, "C1"), ErrBillingAddressNotProvided)

	c = readyCart()
	c.Status = StatusInactive
	c.LineItems = nil
	assert.ErrorIs(t, ValidateCheckout(c, "C2"), ErrOrderCreatorMismatch)

	// 缺收货地址，其余都满足
	c = readyCart()
	c.ShippingAddressID = ""
	assert.ErrorIs(t, ValidateCheckout(c, "C1"), ErrShippingAddressNotProvided)
}

func TestValidateCheckout_DoesNotMutate(t *testing.T) {
	c := readyCart()
	c.TotalPrice = 42
	_ = ValidateCheckout(c, "C1")
	assert.Equal(t, int64(42), c.TotalPrice)
}

func TestCheckoutReason(t *testing.T) {
	assert.Equal(t, "missing_billing_address", CheckoutReason(ErrBillingAddressNotProvided))
	assert.Equal(t, "total_mismatch", CheckoutReason(ErrInvalidTotalPrice))
	assert.Equal(t, "other", CheckoutReason(ErrInsufficientStock))
	assert.Equal(t, "other", CheckoutReason(errors.New("db down")))
}
