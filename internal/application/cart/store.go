package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/pkg/metrics"
	"github.com/xiebiao/moongift/pkg/tracing"
)

const tracerName = "moongift/cart"

// Store 购物车用例共享的依赖和流程
// 教学要点:
// 1. 写操作统一走 加锁 → 事务 → SELECT ... FOR UPDATE 三层保护
// 2. 进程内/Redis锁串行化同一用户的请求,行锁兜底多实例部署下锁失效的情况
// 3. 事务提交后重新读取购物车,返回给前端的总是最新的合计金额
type Store struct {
	cartRepo    cart.Repository
	itemRepo    cart.ItemRepository
	productRepo product.Repository
	locker      cart.Locker
	txManager   *mysql.TxManager
}

// NewStore 创建购物车用例依赖
func NewStore(
	cartRepo cart.Repository,
	itemRepo cart.ItemRepository,
	productRepo product.Repository,
	locker cart.Locker,
	txManager *mysql.TxManager,
) *Store {
	metrics.InitMetrics()
	return &Store{
		cartRepo:    cartRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		locker:      locker,
		txManager:   txManager,
	}
}

// GetOrCreate 查询用户购物车,不存在时创建
// 并发首次访问时两个请求都可能走到Create,唯一索引冲突的一方重新查询即可
func (s *Store) GetOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.NewCart(userID)
	err = s.cartRepo.Create(ctx, c)
	if errors.Is(err, cart.ErrCartExists) {
		return s.cartRepo.FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// mutate 加锁并在事务中执行写操作,完成后返回最新的购物车
// fn收到的购物车已加行锁
func (s *Store) mutate(ctx context.Context, op string, userID uint, fn func(ctx context.Context, c *cart.Cart) error) (result *cart.Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "cart."+op)
	defer func() {
		tracing.End(span, err)
		metrics.IncCounterVec(metrics.CartOperationsTotal, map[string]string{"op": op, "result": metrics.Result(err)})
	}()

	if _, err = s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	unlock, err := AcquireLock(ctx, s.locker, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		c, err := s.cartRepo.LockByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		return fn(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.FindByUserID(ctx, userID)
}

// AcquireLock 获取用户购物车锁并记录等待时间
// 下单用例同样需要持有这把锁
func AcquireLock(ctx context.Context, locker cart.Locker, userID uint) (func(), error) {
	start := time.Now()
	unlock, err := locker.Lock(ctx, userID)
	metrics.ObserveHistogram(metrics.CartLockWaitDuration, time.Since(start).Seconds())
	if err != nil {
		zap.L().Warn("acquire cart lock failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return unlock, nil
}
