package cart

import (
	"errors"
)

// checkoutRules 结算前置条件，按顺序检查，返回第一个不满足的条件
// 顺序固定，保证同时不满足多个条件时返回的错误是确定的
var checkoutRules = []struct {
	reason string
	err    error
	ok     func(c *Cart, customerID string) bool
}{
	{"wrong_customer", ErrOrderCreatorMismatch, func(c *Cart, customerID string) bool { return c.IsOwnedBy(customerID) }},
	{"cart_inactive", ErrCartNotActive, func(c *Cart, _ string) bool { return c.Status == StatusActive }},
	{"missing_billing_address", ErrBillingAddressNotProvided, func(c *Cart, _ string) bool { return c.BillingAddressID != "" }},
	{"missing_shipping_address", ErrShippingAddressNotProvided, func(c *Cart, _ string) bool { return c.ShippingAddressID != "" }},
	{"missing_delivery_method", ErrDeliveryMethodNotProvided, func(c *Cart, _ string) bool { return c.DeliveryMethod != "" }},
	{"empty_cart", ErrLineItemsNotProvided, func(c *Cart, _ string) bool { return len(c.LineItems) > 0 }},
	{"total_mismatch", ErrInvalidTotalPrice, func(c *Cart, _ string) bool { return c.TotalPrice == c.SumLineItems() }},
}

// ValidateCheckout 结算校验（纯函数，无副作用）
// c必须是完整加载了明细的购物车，customerID是发起结算的客户
func ValidateCheckout(c *Cart, customerID string) error {
	for _, rule := range checkoutRules {
		if !rule.ok(c, customerID) {
			return rule.err
		}
	}
	return nil
}

// CheckoutReason 结算错误对应的指标标签，非结算前置条件错误返回"other"
func CheckoutReason(err error) string {
	for _, rule := range checkoutRules {
		if errors.Is(err, rule.err) {
			return rule.reason
		}
	}
	return "other"
}
