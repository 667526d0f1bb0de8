package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// TokenBlacklist JWT黑名单
// 设计说明：
// 1. JWT是无状态的，登出后只能靠黑名单让Token提前失效
// 2. Key设计：blacklist:{token}，TTL等于Token剩余有效期，过期自动清理
// 3. 认证中间件每次请求检查一次（EXISTS，O(1)）
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist 创建黑名单
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add 将Token加入黑名单
// ttl<=0表示Token已过期，无需记录
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}
	return nil
}

// Contains 检查Token是否在黑名单中
func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return n > 0, nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
