package cart

// Optional 表示"字段是否提供"
// 零值为未提供；部分更新时未提供的字段保持原值，而不是被清空
type Optional[T any] struct {
	value T
	set   bool
}

// Some 提供了值的字段
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None 未提供的字段
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get 返回值以及是否提供
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet 是否提供
func (o Optional[T]) IsSet() bool {
	return o.set
}

// FromPtr nil指针视为未提供（HTTP层DTO使用指针字段）
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// UpdateParams 购物车部分更新参数
type UpdateParams struct {
	Status            Optional[Status]
	BillingAddressID  Optional[string]
	ShippingAddressID Optional[string]
	DeliveryMethod    Optional[DeliveryMethod]
}

// IsEmpty 没有任何字段需要更新
func (p UpdateParams) IsEmpty() bool {
	return !p.Status.IsSet() && !p.BillingAddressID.IsSet() &&
		!p.ShippingAddressID.IsSet() && !p.DeliveryMethod.IsSet()
}
