package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-checkout/internal/domain/inventory"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// inventoryRepository 库存仓储实现
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Available(ctx context.Context, bookID uint) (int, error) {
	var model InventoryModel
	err := dbFrom(ctx, r.db).Where("book_id = ?", bookID).First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, apperrors.Wrap(err, "查询库存失败")
	}
	return model.Quantity, nil
}

// LockByBookID SELECT FOR UPDATE锁定库存行
// 教学要点:必须在事务内调用,否则锁在语句结束时就释放了
func (r *inventoryRepository) LockByBookID(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ?", bookID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, inventory.ErrInsufficientStock
		}
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}
	return &inventory.Inventory{
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// Decrease 扣减库存(原子操作)
// UPDATE inventories SET quantity = quantity - n WHERE book_id = ? AND quantity >= n
func (r *inventoryRepository) Decrease(ctx context.Context, bookID uint, n int) error {
	result := dbFrom(ctx, r.db).Model(&InventoryModel{}).
		Where("book_id = ?", bookID).
		Where("quantity >= ?", n).
		Update("quantity", gorm.Expr("quantity - ?", n))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrInsufficientStock
	}
	return nil
}
