package cart

import (
	"context"

	"github.com/xiebiao/bookstore-checkout/internal/domain/book"
)

// Repository 购物车仓储接口（表头+明细一起读取）
// 设计说明:
// 1. 实现从ctx中取事务句柄，同一个TxManager.Transaction内的调用共享一个事务
// 2. 读取时明细按加入顺序排列
type Repository interface {
	// Create 写入新购物车表头
	Create(ctx context.Context, c *Cart) error

	// FindByID 查询购物车及明细，不存在返回ErrCartNotFound
	FindByID(ctx context.Context, id string) (*Cart, error)

	// LockByID 对购物车行加排他锁（SELECT ... FOR UPDATE）后读取明细
	// 必须在事务内调用，锁在事务提交或回滚时释放
	LockByID(ctx context.Context, id string) (*Cart, error)

	// Update 更新表头（状态、总价、地址、配送方式），Version+1
	Update(ctx context.Context, c *Cart) error

	// Delete 在同一事务中先删明细再删表头，不依赖外键级联
	Delete(ctx context.Context, id string) error

	// ListByCustomer 客户的全部购物车，按创建时间倒序
	ListByCustomer(ctx context.Context, customerID string) ([]*Cart, error)
}

// LineItemRepository 购物车明细仓储接口
type LineItemRepository interface {
	Create(ctx context.Context, item *LineItem) error
	// Update 更新数量与小计
	Update(ctx context.Context, item *LineItem) error
	Delete(ctx context.Context, id string) error
	DeleteByCartID(ctx context.Context, cartID string) error
}

// BookLookup 图书价格查询
type BookLookup interface {
	FindByID(ctx context.Context, id uint) (*book.Book, error)
}

// StockLookup 可用库存查询
type StockLookup interface {
	Available(ctx context.Context, bookID uint) (int, error)
}
