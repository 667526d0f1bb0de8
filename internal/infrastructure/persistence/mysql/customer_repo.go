package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// FindByUserID 按登录账号查找客户
func (r *customerRepository) FindByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	var model CustomerModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return &customer.Customer{
		ID:        model.ID,
		UserID:    model.UserID,
		Name:      model.Name,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
	}, nil
}
