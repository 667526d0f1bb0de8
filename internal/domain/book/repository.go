package book

import (
	"context"
)

// Repository 图书仓储接口(目录服务的只读视图)
// 设计说明:
// 1. 图书的增删改属于目录管理,不在本服务范围
// 2. 拆分微服务时可以换成gRPC调用,cart领域不受影响
type Repository interface {
	// FindByID 查询图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)
}
