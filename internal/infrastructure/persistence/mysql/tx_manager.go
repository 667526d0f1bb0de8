package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的key（非导出类型，避免与其他包冲突）
type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB，Repository用dbFrom取出，同一个Transaction内的仓储共享事务
// 3. 嵌套调用复用外层事务（GORM使用Savepoint），内层失败只回滚到Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error时ROLLBACK并返回该error，返回nil时COMMIT；fn panic时回滚后继续panic
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    c, err := engine.LockCart(ctx, cartID)
//	    if err != nil {
//	        return err // 回滚
//	    }
//	    return inventoryRepo.Decrease(ctx, bookID, qty)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if outer, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return outer.Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom 优先返回context中的事务DB
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
