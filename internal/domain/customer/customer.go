// Package customer 客户查询
//
// 登录账号（JWT中的user_id）与客户一一对应，购物车归属于客户而不是账号
package customer

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// ErrCustomerNotFound 当前账号没有客户档案
var ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

// Customer 客户
type Customer struct {
	ID        string
	UserID    uint
	Name      string
	Email     string
	CreatedAt time.Time
}

// Repository 客户仓储接口
type Repository interface {
	FindByUserID(ctx context.Context, userID uint) (*Customer, error)
}
