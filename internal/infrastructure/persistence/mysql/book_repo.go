package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-checkout/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// bookRepository 图书仓储实现(只读)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// FindByID 根据ID查找图书(软删除的图书视为不存在)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return &book.Book{
		ID:        model.ID,
		ISBN:      model.ISBN,
		Title:     model.Title,
		Author:    model.Author,
		Price:     model.Price,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
