package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	cartapp "github.com/xiebiao/moongift/internal/application/cart"
	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/infrastructure/lock"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	rediscache "github.com/xiebiao/moongift/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/moongift/internal/testutil"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event order.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// failingItemRepo 清空购物车时失败,用于验证回滚
type failingItemRepo struct {
	cart.ItemRepository
}

func (r failingItemRepo) DeleteByCartID(ctx context.Context, cartID uint) (int64, error) {
	return 0, apperrors.Wrap(errors.New("disk full"), "清空购物车失败")
}

type fixture struct {
	db          *gorm.DB
	productRepo product.Repository
	cartRepo    cart.Repository
	itemRepo    cart.ItemRepository
	orderRepo   order.Repository
	locker      cart.Locker
	txManager   *mysql.TxManager
	cache       *rediscache.OrderCache
	mr          *miniredis.Miniredis
	publisher   *recordingPublisher
	category    *product.Category

	addItem *cartapp.AddItemUseCase
	getCart *cartapp.GetCartUseCase
	create  *CreateOrderUseCase
	list    *ListOrdersUseCase
	get     *GetOrderUseCase
	cancel  *CancelOrderUseCase
	admin   *UpdateOrderStatusUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		db:          db,
		productRepo: mysql.NewProductRepository(db),
		cartRepo:    mysql.NewCartRepository(db),
		itemRepo:    mysql.NewCartItemRepository(db),
		orderRepo:   mysql.NewOrderRepository(db),
		locker:      lock.NewLocalLocker(),
		txManager:   mysql.NewTxManager(db),
		cache:       rediscache.NewOrderCache(client, time.Minute),
		mr:          mr,
		publisher:   &recordingPublisher{},
		category:    testutil.SeedCategory(t, db, "Gifts"),
	}

	store := cartapp.NewStore(f.cartRepo, f.itemRepo, f.productRepo, f.locker, f.txManager)
	f.addItem = cartapp.NewAddItemUseCase(store)
	f.getCart = cartapp.NewGetCartUseCase(store)
	f.create = NewCreateOrderUseCase(f.cartRepo, f.itemRepo, f.orderRepo, f.locker, f.txManager, f.publisher)
	f.list = NewListOrdersUseCase(f.orderRepo)
	f.get = NewGetOrderUseCase(f.orderRepo, f.cache)
	f.cancel = NewCancelOrderUseCase(f.orderRepo, f.txManager, f.cache, f.publisher)
	f.admin = NewUpdateOrderStatusUseCase(f.orderRepo, f.txManager, f.cache, f.publisher)
	return f
}

func (f *fixture) add(t *testing.T, userID uint, p *product.Product, quantity int) {
	t.Helper()
	_, err := f.addItem.Execute(context.Background(), cartapp.AddItemRequest{UserID: userID, ProductID: p.ID, Quantity: quantity})
	require.NoError(t, err)
}

func validShipping() order.ShippingInfo {
	return order.ShippingInfo{
		FullName: "Dilnoza Karimova",
		Phone:    "+998 (90) 123-45-67",
		Email:    "dilnoza@example.com",
		Address:  "Amir Temur 1",
		City:     "Tashkent",
		Notes:    "call before delivery",
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("按快照价格下单并清空购物车", func(t *testing.T) {
		f := newFixture(t)
		a := testutil.SeedProduct(t, f.db, f.category, "Rose Box", "1000.00", 10)
		b := testutil.SeedProduct(t, f.db, f.category, "Teddy Bear", "500.00", 0)
		f.add(t, 1, a, 2)
		f.add(t, 1, b, 1)

		o, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		require.NoError(t, err)

		assert.NotZero(t, o.ID)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, "2300.00", o.TotalPrice.StringFixed(2))
		assert.Equal(t, "call before delivery", o.Notes)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "Rose Box", o.Items[0].ProductName)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(900)))
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.True(t, o.Items[1].Price.Equal(decimal.NewFromInt(500)))
		assert.True(t, o.CalculateTotal().Equal(o.TotalPrice))

		c, err := f.getCart.Execute(ctx, 1)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())

		assert.Equal(t, []string{order.EventCreated}, f.publisher.types())
	})

	t.Run("购物车为空不能下单", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		assert.ErrorIs(t, err, order.ErrEmptyCart)

		_, err = f.getCart.Execute(ctx, 1)
		require.NoError(t, err)
		_, err = f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		assert.ErrorIs(t, err, order.ErrEmptyCart)

		count, err := f.orderRepo.CountByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, f.publisher.types())
	})

	t.Run("收货信息校验失败,购物车不变", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Card", "5.00", 0)
		f.add(t, 1, p, 1)

		shipping := validShipping()
		shipping.Phone = "call me"
		shipping.Email = ""
		_, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: shipping})
		require.ErrorIs(t, err, apperrors.ErrInvalidParams)
		fields := apperrors.GetAppError(err).Fields
		assert.Contains(t, fields, "phone")
		assert.Contains(t, fields, "email")

		c, err := f.getCart.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, c.Items, 1)
	})

	t.Run("商品改价改名不影响历史订单", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Perfume", "300.00", 0)
		f.add(t, 1, p, 3)

		o, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		require.NoError(t, err)

		p.Name = "Perfume 2.0"
		p.Price = decimal.NewFromInt(999)
		require.NoError(t, f.productRepo.Update(ctx, p))

		stored, err := f.orderRepo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "900.00", stored.TotalPrice.StringFixed(2))
		assert.Equal(t, "Perfume", stored.Items[0].ProductName)
		assert.True(t, stored.Items[0].Price.Equal(decimal.NewFromInt(300)))
	})

	t.Run("清空购物车失败时整体回滚", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Watch", "150.00", 0)
		f.add(t, 1, p, 2)

		uc := NewCreateOrderUseCase(f.cartRepo, failingItemRepo{f.itemRepo}, f.orderRepo, f.locker, f.txManager, f.publisher)
		_, err := uc.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		require.Error(t, err)

		count, err := f.orderRepo.CountByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)

		c, err := f.getCart.Execute(ctx, 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.Empty(t, f.publisher.types())
	})
}

func TestConcurrentAddAndCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, f.category, "Sticker", "1.00", 0)
	f.add(t, 1, p, 1)

	const adds = 20
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.addItem.Execute(ctx, cartapp.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1})
			assert.NoError(t, err)
		}()
		if i%5 == 0 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
				if err != nil {
					assert.ErrorIs(t, err, order.ErrEmptyCart)
				}
			}()
		}
	}
	wg.Wait()

	orders, err := f.list.Execute(ctx, 1)
	require.NoError(t, err)
	ordered := 0
	for _, o := range orders {
		for _, item := range o.Items {
			ordered += item.Quantity
		}
	}

	c, err := f.getCart.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, adds+1, ordered+c.TotalItems())
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, f.category, "Scarf", "80.00", 0)
	f.add(t, 1, p, 1)
	o, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
	require.NoError(t, err)

	t.Run("首次读取回填缓存", func(t *testing.T) {
		got, err := f.get.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)

		cached, err := f.cache.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, cached.ID)
	})

	t.Run("缓存故障时降级查库", func(t *testing.T) {
		f.mr.SetError("LOADING")
		defer f.mr.SetError("")

		got, err := f.get.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("他人订单返回不存在", func(t *testing.T) {
		_, err := f.get.Execute(ctx, 2, o.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := f.get.Execute(ctx, 1, 9999)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("列表按时间倒序", func(t *testing.T) {
		f.add(t, 1, p, 2)
		second, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		require.NoError(t, err)

		orders, err := f.list.Execute(ctx, 1)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)

		others, err := f.list.Execute(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, others)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	placeOrder := func(t *testing.T, f *fixture) *order.Order {
		t.Helper()
		p := testutil.SeedProduct(t, f.db, f.category, "Cake "+time.Now().Format("150405.000000"), "40.00", 0)
		f.add(t, 1, p, 1)
		o, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
		require.NoError(t, err)
		return o
	}

	t.Run("待处理订单可以取消", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)
		_, err := f.get.Execute(ctx, 1, o.ID)
		require.NoError(t, err)

		cancelled, err := f.cancel.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, cancelled.Status)

		_, err = f.cache.Get(ctx, o.ID)
		assert.ErrorIs(t, err, rediscache.ErrCacheMiss)

		got, err := f.get.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, got.Status)
		assert.Equal(t, []string{order.EventCreated, order.EventCancelled}, f.publisher.types())
	})

	t.Run("取消前读到的快照不会回填缓存", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)
		stale, err := f.orderRepo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)

		_, err = f.cancel.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		require.NoError(t, f.cache.Set(ctx, stale))

		got, err := f.get.Execute(ctx, 1, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, got.Status)
	})

	t.Run("重复取消报错", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)
		_, err := f.cancel.Execute(ctx, 1, o.ID)
		require.NoError(t, err)

		_, err = f.cancel.Execute(ctx, 1, o.ID)
		assert.ErrorIs(t, err, order.ErrCannotCancel)
	})

	t.Run("处理中的订单不能取消,状态不变", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)
		status := string(order.StatusProcessing)
		_, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: &status})
		require.NoError(t, err)

		_, err = f.cancel.Execute(ctx, 1, o.ID)
		require.ErrorIs(t, err, order.ErrCannotCancel)

		stored, err := f.orderRepo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, stored.Status)
	})

	t.Run("不能取消他人订单", func(t *testing.T) {
		f := newFixture(t)
		o := placeOrder(t, f)
		_, err := f.cancel.Execute(ctx, 2, o.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, f.category, "Lamp", "60.00", 0)
	f.add(t, 1, p, 1)
	o, err := f.create.Execute(ctx, CreateOrderRequest{UserID: 1, Shipping: validShipping()})
	require.NoError(t, err)

	strptr := func(s string) *string { return &s }

	t.Run("可以跳过中间状态", func(t *testing.T) {
		updated, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: strptr("shipped")})
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, updated.Status)

		last := f.publisher.events[len(f.publisher.events)-1]
		assert.Equal(t, order.EventStatusChanged, last.Type)
		assert.Equal(t, order.StatusPending, last.PrevStatus)
	})

	t.Run("未知状态", func(t *testing.T) {
		_, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: strptr("lost")})
		require.ErrorIs(t, err, order.ErrUnknownStatus)
		assert.Contains(t, apperrors.GetAppError(err).Fields, "status")
	})

	t.Run("终态不能再变更,备注仍可修改", func(t *testing.T) {
		_, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: strptr("delivered")})
		require.NoError(t, err)

		_, err = f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: strptr("processing")})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

		events := len(f.publisher.events)
		updated, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Notes: strptr("left at door")})
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, updated.Status)
		assert.Equal(t, "left at door", updated.Notes)
		assert.Len(t, f.publisher.events, events)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := f.admin.Execute(ctx, UpdateOrderStatusRequest{OrderID: 9999, Notes: strptr("x")})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("后台列表按状态过滤", func(t *testing.T) {
		list := NewAdminListOrdersUseCase(f.orderRepo)
		orders, total, err := list.Execute(ctx, AdminListOrdersRequest{Status: "delivered"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, orders, 1)

		_, _, err = list.Execute(ctx, AdminListOrdersRequest{Status: "unknown"})
		assert.ErrorIs(t, err, order.ErrUnknownStatus)
	})
}
