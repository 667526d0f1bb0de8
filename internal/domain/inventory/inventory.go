// Package inventory 图书库存
//
// 设计说明：
// 1. 库存独立于图书目录（inventories表，book_id唯一）
// 2. 加购时只读检查可用库存，结算时加行锁扣减
// 3. 结算按book_id升序加锁，多个结算并发时不会互相死锁
package inventory

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// ErrInsufficientStock 库存不足
var ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

// Inventory 库存
type Inventory struct {
	BookID    uint
	Quantity  int
	UpdatedAt time.Time
}

// Repository 库存仓储接口
type Repository interface {
	// Available 可用库存，没有库存记录时返回0
	Available(ctx context.Context, bookID uint) (int, error)

	// LockByBookID SELECT ... FOR UPDATE锁定库存行，没有记录时返回ErrInsufficientStock
	LockByBookID(ctx context.Context, bookID uint) (*Inventory, error)

	// Decrease 扣减库存（quantity - n >= 0 条件更新），不足返回ErrInsufficientStock
	Decrease(ctx context.Context, bookID uint, n int) error
}
