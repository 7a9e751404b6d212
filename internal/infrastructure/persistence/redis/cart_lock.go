package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// releaseScript 只删除自己持有的锁
// 锁过期后被其它请求获取时,不能误删别人的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// 获取锁失败后的重试间隔
const lockRetryInterval = 20 * time.Millisecond

// CartLocker 基于Redis的购物车分布式锁
// 多实例部署时保证同一用户的购物车写操作串行执行
//
//	SET moongift:lock:cart:{user_id} {token} NX PX {ttl}
type CartLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewCartLocker 创建购物车锁
// ttl是锁的最长持有时间,wait是获取锁的最长等待时间
func NewCartLocker(client *redis.Client, ttl, wait time.Duration) *CartLocker {
	return &CartLocker{client: client, ttl: ttl, wait: wait}
}

func cartLockKey(userID uint) string {
	return fmt.Sprintf("%slock:cart:%d", keyPrefix, userID)
}

// Lock 获取用户购物车锁
// 等待超时返回ErrLockTimeout,返回的unlock必须调用
func (l *CartLocker) Lock(ctx context.Context, userID uint) (func(), error) {
	key := cartLockKey(userID)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "获取购物车锁失败", Err: err}
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.ErrLockTimeout
		case <-ticker.C:
		}
	}
}

// release 释放锁,使用独立的context,请求取消后也能释放
func (l *CartLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		zap.L().Warn("release cart lock failed", zap.String("key", key), zap.Error(err))
	}
}
