package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/moongift/internal/domain/order"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestOrderCache(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewOrderCache(client, 5*time.Minute)
	ctx := context.Background()

	t.Run("未命中", func(t *testing.T) {
		_, err := cache.Get(ctx, 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("写入后读取", func(t *testing.T) {
		o := &order.Order{
			ID:         1,
			UserID:     7,
			Status:     order.StatusPending,
			TotalPrice: decimal.RequireFromString("2300.00"),
			Shipping:   order.ShippingInfo{FullName: "Ali", City: "Tashkent"},
			Items: []order.OrderItem{
				{ID: 1, OrderID: 1, ProductID: 3, ProductName: "Mug", Quantity: 2, Price: decimal.RequireFromString("900.00")},
			},
		}
		require.NoError(t, cache.Set(ctx, o))

		got, err := cache.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, got.Status)
		assert.True(t, got.TotalPrice.Equal(o.TotalPrice))
		assert.Equal(t, "Tashkent", got.Shipping.City)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Mug", got.Items[0].ProductName)

		ttl := mr.TTL(orderKey(1))
		assert.GreaterOrEqual(t, ttl, 5*time.Minute)
		assert.LessOrEqual(t, ttl, 6*time.Minute)
	})

	t.Run("删除后未命中", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx, &order.Order{ID: 1}))
		_, err := cache.Get(ctx, 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("失效后旧快照不能回填", func(t *testing.T) {
		created := time.Now().Add(-time.Minute)
		stale := &order.Order{ID: 2, Status: order.StatusPending, UpdatedAt: created}
		cancelled := &order.Order{ID: 2, Status: order.StatusCancelled, UpdatedAt: created.Add(time.Second)}

		// 读请求先查到pending,取消提交并失效缓存后才回填
		require.NoError(t, cache.Invalidate(ctx, cancelled))
		require.NoError(t, cache.Set(ctx, stale))

		_, err := cache.Get(ctx, 2)
		assert.ErrorIs(t, err, ErrCacheMiss)

		require.NoError(t, cache.Set(ctx, cancelled))
		got, err := cache.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, got.Status)

		require.NoError(t, cache.Set(ctx, stale))
		got, err = cache.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, got.Status)
	})

	t.Run("过期后未命中", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, &order.Order{ID: 2}))
		mr.FastForward(7 * time.Minute)
		_, err := cache.Get(ctx, 2)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestCartLocker(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewCartLocker(client, 5*time.Second, 200*time.Millisecond)
	ctx := context.Background()

	t.Run("加锁和释放", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, 1)
		require.NoError(t, err)
		assert.True(t, mr.Exists(cartLockKey(1)))
		unlock()
		assert.False(t, mr.Exists(cartLockKey(1)))
	})

	t.Run("等待超时", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, 2)
		require.NoError(t, err)
		defer unlock()

		_, err = locker.Lock(ctx, 2)
		assert.ErrorIs(t, err, apperrors.ErrLockTimeout)
	})

	t.Run("不同用户互不影响", func(t *testing.T) {
		unlock3, err := locker.Lock(ctx, 3)
		require.NoError(t, err)
		defer unlock3()

		unlock4, err := locker.Lock(ctx, 4)
		require.NoError(t, err)
		unlock4()
	})

	t.Run("不会释放别人的锁", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, 5)
		require.NoError(t, err)
		// 模拟锁过期后被其它请求获取
		require.NoError(t, mr.Set(cartLockKey(5), "other-token"))
		unlock()
		v, err := mr.Get(cartLockKey(5))
		require.NoError(t, err)
		assert.Equal(t, "other-token", v)
	})

	t.Run("并发时串行执行", func(t *testing.T) {
		waitLocker := NewCartLocker(client, 5*time.Second, 5*time.Second)
		var inside, maxInside int32
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := waitLocker.Lock(ctx, 6)
				if !assert.NoError(t, err) {
					return
				}
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				unlock()
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, maxInside)
	})
}

func TestSessionStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	t.Run("会话读写", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"ip": "127.0.0.1"}, time.Hour))
		data, err := store.GetSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", data["ip"])

		require.NoError(t, store.DeleteSession(ctx, 1))
		_, err = store.GetSession(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单", func(t *testing.T) {
		ok, err := store.IsInBlacklist(ctx, "tkn")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.AddToBlacklist(ctx, "tkn", time.Minute))
		ok, err = store.IsInBlacklist(ctx, "tkn")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Redis返回错误时立即失败", func(t *testing.T) {
		mr.SetError("LOADING Redis is loading the dataset in memory")
		defer mr.SetError("")

		done := make(chan error, 1)
		go func() {
			done <- store.SaveSession(ctx, 2, map[string]interface{}{"ip": "127.0.0.1"}, time.Hour)
		}()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "保存会话失败")
		case <-time.After(3 * time.Second):
			t.Fatal("SaveSession未在3秒内返回")
		}
	})

	t.Run("错误恢复后可继续写入", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, 2, map[string]interface{}{"ip": "10.0.0.1"}, time.Hour))
		assert.Equal(t, time.Hour, mr.TTL(sessionKey(2)))
	})
}
