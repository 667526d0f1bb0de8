package book

import (
	"time"
)

// Book 图书实体
// DDD设计说明:
// 1. 购物车只关心图书的当前价格(加购时做价格快照)
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. 库存拆到inventory聚合,结算时单独加行锁扣减
type Book struct {
	ID        uint
	ISBN      string
	Title     string
	Author    string
	Price     int64 // 价格(单位:分,1元=100分)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPurchasable 价格为0的图书(未定价)不能加入购物车
func (b *Book) IsPurchasable() bool {
	return b.Price > 0
}
