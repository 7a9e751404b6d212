package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/moongift/internal/domain/order"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// setScript 版本不低于已记录版本时才写入
// 读请求可能在状态变更提交前查库、在删除缓存之后回填,旧版本会被拒绝
var setScript = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if current and tonumber(current) > tonumber(ARGV[2]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// invalidateScript 删除缓存并记录提交后的版本
var invalidateScript = redis.NewScript(`
redis.call("DEL", KEYS[1])
local current = redis.call("GET", KEYS[2])
if not current or tonumber(current) < tonumber(ARGV[1]) then
	redis.call("SET", KEYS[2], ARGV[1], "PX", ARGV[2])
end
return 1
`)

// OrderCache 订单详情缓存(Cache-Aside)
// 1. 读:先查缓存,未命中再查库并回填
// 2. 写:状态变更后删除缓存并记录版本(updated_at毫秒),下次读取重新加载
// 3. 回填时版本低于记录版本的快照被丢弃
// 4. TTL加随机抖动,避免大量key同时过期
//
//	moongift:order:{id}      订单JSON
//	moongift:order:{id}:ver  版本号
type OrderCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewOrderCache 创建订单缓存
func NewOrderCache(client *redis.Client, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OrderCache{client: client, baseTTL: ttl}
}

func orderKey(id uint) string {
	return fmt.Sprintf("%sorder:%d", keyPrefix, id)
}

func orderVersionKey(id uint) string {
	return orderKey(id) + ":ver"
}

func orderVersion(o *order.Order) int64 {
	return o.UpdatedAt.UnixMilli()
}

// Get 读取订单,未命中返回ErrCacheMiss
func (c *OrderCache) Get(ctx context.Context, id uint) (*order.Order, error) {
	data, err := c.client.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var o order.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return &o, nil
}

// Set 写入订单,已有更新版本时跳过
func (c *OrderCache) Set(ctx context.Context, o *order.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}

	jitter := time.Duration(rand.Int63n(int64(c.baseTTL)/5 + 1))
	ttl := (c.baseTTL + jitter).Milliseconds()
	keys := []string{orderKey(o.ID), orderVersionKey(o.ID)}
	if err := setScript.Run(ctx, c.client, keys, data, orderVersion(o), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate 删除订单缓存,记录o的版本,阻止更早读到的快照回填
func (c *OrderCache) Invalidate(ctx context.Context, o *order.Order) error {
	keys := []string{orderKey(o.ID), orderVersionKey(o.ID)}
	if err := invalidateScript.Run(ctx, c.client, keys, orderVersion(o), c.baseTTL.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}
