package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 通过context传递事务,与购物车、库存写入共用一个事务
type Repository interface {
	// Create 创建订单(包含订单明细)
	Create(ctx context.Context, order *Order) error

	// FindByCartID 查找由该购物车生成的订单(包含订单明细)
	// 没有时返回ErrOrderNotFound
	FindByCartID(ctx context.Context, cartID string) (*Order, error)
}
