package order

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	cartapp "github.com/xiebiao/moongift/internal/application/cart"
	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/pkg/metrics"
	"github.com/xiebiao/moongift/pkg/tracing"
)

const tracerName = "moongift/order"

// CreateOrderUseCase 购物车结算下单用例
// 教学要点:这是整个项目最核心的用例
// 涉及:用户级串行化、事务、价格快照、清空购物车
type CreateOrderUseCase struct {
	cartRepo  cart.Repository
	itemRepo  cart.ItemRepository
	orderRepo order.Repository
	locker    cart.Locker
	txManager *mysql.TxManager
	events    *eventNotifier
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	cartRepo cart.Repository,
	itemRepo cart.ItemRepository,
	orderRepo order.Repository,
	locker cart.Locker,
	txManager *mysql.TxManager,
	publisher order.EventPublisher,
) *CreateOrderUseCase {
	metrics.InitMetrics()
	return &CreateOrderUseCase{
		cartRepo:  cartRepo,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		locker:    locker,
		txManager: txManager,
		events:    newEventNotifier(publisher),
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID   uint // 从JWT中提取
	Shipping order.ShippingInfo
}

// Execute 执行下单
//
// 核心问题:购物车是可变的,订单是不可变的
// 场景:用户在一个标签页点"下单",同时在另一个标签页继续加购
// 错误实现:
//  1. 读取购物车 → 2件商品
//  2. 另一个请求加入第3件商品
//  3. 创建订单(2件) → 清空购物车(3件全删)
//     结果:第3件商品既不在订单里,也不在购物车里
//
// 正确实现:
//  1. 获取用户购物车锁,加购请求必须等待
//  2. 事务内 SELECT ... FOR UPDATE 锁定购物车行
//  3. 按当前折后价生成订单明细快照,合计金额冻结
//  4. 创建订单 → 删除全部明细,任一步失败整体回滚
//  5. 提交后释放锁,发布order.created事件
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (result *order.Order, err error) {
	start := time.Now()
	metrics.IncGauge(metrics.OrdersInProgress)
	ctx, span := tracing.StartSpan(ctx, tracerName, "order.CreateFromCart")
	defer func() {
		metrics.DecGauge(metrics.OrdersInProgress)
		metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounter(metrics.OrdersFailedTotal)
		} else {
			metrics.IncCounter(metrics.OrdersCreatedTotal)
		}
		tracing.End(span, err)
	}()

	// 1. 收货信息校验(在加锁之前,非法请求不占用锁)
	shipping := req.Shipping.Normalize()
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	// 2. 用户级锁:与加购、改数量互斥
	unlock, err := cartapp.AcquireLock(ctx, uc.locker, req.UserID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:锁定购物车
		// ========================================
		// SELECT * FROM carts WHERE user_id = ? FOR UPDATE
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if errors.Is(err, cart.ErrCartNotFound) {
			return order.ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return order.ErrEmptyCart
		}

		// ========================================
		// 步骤2:价格和名称快照
		// ========================================
		// 教学要点:订单明细保存下单时的折后单价和商品名称
		// 之后商品改价、改名、下架都不影响历史订单
		items := make([]order.OrderItem, len(c.Items))
		for i, item := range c.Items {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			items[i] = order.OrderItem{
				ProductID:   item.ProductID,
				ProductName: name,
				Quantity:    item.Quantity,
				Price:       item.UnitPrice(),
			}
		}

		// ========================================
		// 步骤3:创建订单(合计金额按购物车实时计算)
		// ========================================
		o := order.NewOrder(req.UserID, shipping, items, c.TotalPrice())
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		// ========================================
		// 步骤4:清空购物车明细,购物车本身保留
		// ========================================
		if _, err := uc.itemRepo.DeleteByCartID(txCtx, c.ID); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		if !errors.Is(err, order.ErrEmptyCart) {
			zap.L().Error("create order failed", zap.Uint("user_id", req.UserID), zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("order created",
		zap.Uint("order_id", result.ID),
		zap.Uint("user_id", result.UserID),
		zap.String("total_price", result.TotalPrice.StringFixed(2)),
		zap.Int("items", len(result.Items)),
	)
	uc.events.publish(ctx, order.NewEvent(order.EventCreated, result))
	return result, nil
}
