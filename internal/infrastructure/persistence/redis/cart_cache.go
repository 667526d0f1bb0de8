package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cart cache miss")

// maxJitter TTL随机抖动上限，避免同一批key同时过期
const maxJitter = 2 * time.Minute

// deletedVersion 已删除购物车的墓碑版本，任何快照都不能覆盖
const deletedVersion = math.MaxInt64

// storeIfNewer 按版本条件写入
// hash字段：v=购物车Version，d=JSON快照（空串表示墓碑）
// 1. 版本比已缓存的旧：不写
// 2. 版本相同：只有快照覆盖墓碑时才写
// ARGV: version, data, ttl(ms)
var storeIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur then
  local old = tonumber(cur)
  local new = tonumber(ARGV[1])
  if new < old then
    return 0
  end
  if new == old and (ARGV[2] == '' or redis.call('HGET', KEYS[1], 'd') ~= '') then
    return 0
  end
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// CartCache 购物车读缓存
// 设计说明：
// 1. cache-aside：GetCart未命中时回填，写操作提交后按新版本写墓碑
// 2. 回填带上读到的Version，读库期间有写入提交时，旧快照版本更低，写不进去
// 3. 缓存的是完整聚合（表头+明细），读路径不再查MySQL
// 4. Redis故障不影响正确性，调用方把错误当作未命中处理
type CartCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartCache 创建购物车缓存
func NewCartCache(client *redis.Client, ttl time.Duration) *CartCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CartCache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中或只有墓碑时返回ErrCacheMiss
func (c *CartCache) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	data, err := c.client.HGet(ctx, cartKey(cartID), "d").Bytes()
	if errors.Is(err, redis.Nil) || (err == nil && len(data) == 0) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "读取购物车缓存失败")
	}

	var out cart.Cart
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.Wrap(err, "解析购物车缓存失败")
	}
	return &out, nil
}

// Set 回填缓存，已缓存更新的版本或同版本墓碑之后的写入时忽略
func (c *CartCache) Set(ctx context.Context, ct *cart.Cart) error {
	data, err := json.Marshal(ct)
	if err != nil {
		return apperrors.Wrap(err, "序列化购物车失败")
	}
	ttl := c.ttl + rand.N(maxJitter)
	if err := c.store(ctx, ct.ID, ct.Version, string(data), ttl); err != nil {
		return apperrors.Wrap(err, "写入购物车缓存失败")
	}
	return nil
}

// Invalidate 写操作提交后调用，version是提交后的购物车版本
// 墓碑阻止版本更低的快照回填，版本不低于它的读取可以正常回填
func (c *CartCache) Invalidate(ctx context.Context, cartID string, version int64) error {
	if err := c.store(ctx, cartID, version, "", c.ttl); err != nil {
		return apperrors.Wrap(err, "作废购物车缓存失败")
	}
	return nil
}

// Delete 购物车已删除，写入不可覆盖的墓碑
func (c *CartCache) Delete(ctx context.Context, cartID string) error {
	if err := c.store(ctx, cartID, deletedVersion, "", c.ttl); err != nil {
		return apperrors.Wrap(err, "删除购物车缓存失败")
	}
	return nil
}

func (c *CartCache) store(ctx context.Context, cartID string, version int64, data string, ttl time.Duration) error {
	return storeIfNewer.Run(ctx, c.client, []string{cartKey(cartID)},
		version, data, ttl.Milliseconds()).Err()
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
