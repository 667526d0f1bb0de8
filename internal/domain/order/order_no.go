package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNo 生成订单号
// 教学要点:订单号设计原则
// 1. 时间有序(前缀是下单时间,便于按日期归档)
// 2. 不可预测(后6位随机,防止恶意遍历)
// 3. 唯一性由orders.order_no唯一索引兜底
//
// 格式:ORD + yyyyMMddHHmmss + 6位随机数
// 示例:ORD20261016093015123456
func GenerateOrderNo() string {
	return fmt.Sprintf("ORD%s%06d", time.Now().Format("20060102150405"), rand.IntN(1000000))
}
