package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/infrastructure/lock"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/internal/testutil"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

type fixture struct {
	db          *gorm.DB
	store       *Store
	productRepo product.Repository
	category    *product.Category
	get         *GetCartUseCase
	add         *AddItemUseCase
	update      *UpdateItemUseCase
	remove      *RemoveItemUseCase
	clear       *ClearCartUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	productRepo := mysql.NewProductRepository(db)
	store := NewStore(
		mysql.NewCartRepository(db),
		mysql.NewCartItemRepository(db),
		productRepo,
		lock.NewLocalLocker(),
		mysql.NewTxManager(db),
	)
	return &fixture{
		db:          db,
		store:       store,
		productRepo: productRepo,
		category:    testutil.SeedCategory(t, db, "Flowers"),
		get:         NewGetCartUseCase(store),
		add:         NewAddItemUseCase(store),
		update:      NewUpdateItemUseCase(store),
		remove:      NewRemoveItemUseCase(store),
		clear:       NewClearCartUseCase(store),
	}
}

func TestGetOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("首次访问创建空购物车", func(t *testing.T) {
		c, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.TotalPrice().IsZero())
	})

	t.Run("重复调用返回同一个购物车", func(t *testing.T) {
		first, err := f.get.Execute(ctx, 2)
		require.NoError(t, err)
		second, err := f.get.Execute(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("并发首次访问只创建一个", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make([]uint, 8)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c, err := f.store.GetOrCreate(ctx, 3)
				if assert.NoError(t, err) {
					ids[i] = c.ID
				}
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("新商品加入购物车", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Rose Box", "1000.00", 10)

		c, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.True(t, c.Items[0].UnitPrice().Equal(decimal.NewFromInt(900)))
		assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(1800)))
		assert.Equal(t, 2, c.TotalItems())
	})

	t.Run("重复加入累加数量", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Tulips", "100.00", 0)

		_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 3})
		require.NoError(t, err)
		c, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 4})
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 7, c.Items[0].Quantity)
	})

	t.Run("累加超过99截断为99", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Candles", "10.00", 0)

		_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 60})
		require.NoError(t, err)
		c, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 60})
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 99, c.Items[0].Quantity)
	})

	t.Run("数量超出范围", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Mug", "50.00", 0)

		for _, q := range []int{0, -1, 100} {
			_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: q})
			assert.ErrorIs(t, err, apperrors.ErrInvalidParams, "quantity=%d", q)
		}
	})

	t.Run("商品不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: 999, Quantity: 1})
		require.ErrorIs(t, err, cart.ErrProductUnavailable)
		assert.Contains(t, apperrors.GetAppError(err).Fields, "product_id")
	})

	t.Run("下架商品不能加入", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Old Card", "5.00", 0)
		p.IsActive = false
		require.NoError(t, f.productRepo.Update(ctx, p))

		_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1})
		assert.ErrorIs(t, err, cart.ErrProductUnavailable)

		c, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("合计按当前价格实时计算", func(t *testing.T) {
		f := newFixture(t)
		p := testutil.SeedProduct(t, f.db, f.category, "Vase", "200.00", 0)
		_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 2})
		require.NoError(t, err)

		p.Price = decimal.NewFromInt(300)
		require.NoError(t, f.productRepo.Update(ctx, p))

		c, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(600)))
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, f.category, "Chocolate", "20.00", 0)

	c, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)
	itemID := c.Items[0].ID

	t.Run("边界值1和99可以设置", func(t *testing.T) {
		for _, q := range []int{1, 99} {
			c, err := f.update.Execute(ctx, UpdateItemRequest{UserID: 1, ItemID: itemID, Quantity: q})
			require.NoError(t, err)
			assert.Equal(t, q, c.Items[0].Quantity)
		}
	})

	t.Run("0和100报错且数量不变", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateItemRequest{UserID: 1, ItemID: itemID, Quantity: 7})
		require.NoError(t, err)

		for _, q := range []int{0, 100} {
			_, err := f.update.Execute(ctx, UpdateItemRequest{UserID: 1, ItemID: itemID, Quantity: q})
			assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
		}

		c, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 7, c.Items[0].Quantity)
	})

	t.Run("其他用户的明细返回不存在", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateItemRequest{UserID: 2, ItemID: itemID, Quantity: 3})
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("明细不存在", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateItemRequest{UserID: 1, ItemID: 9999, Quantity: 3})
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := testutil.SeedProduct(t, f.db, f.category, "Balloon", "15.00", 0)
	b := testutil.SeedProduct(t, f.db, f.category, "Ribbon", "3.00", 0)

	_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)
	c, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: b.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)

	t.Run("其他用户不能删除", func(t *testing.T) {
		_, err := f.remove.Execute(ctx, 2, c.Items[0].ID)
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("删除单条明细", func(t *testing.T) {
		after, err := f.remove.Execute(ctx, 1, c.Items[0].ID)
		require.NoError(t, err)
		require.Len(t, after.Items, 1)
		assert.Equal(t, b.ID, after.Items[0].ProductID)
	})

	t.Run("重复删除返回不存在", func(t *testing.T) {
		_, err := f.remove.Execute(ctx, 1, c.Items[0].ID)
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("清空购物车", func(t *testing.T) {
		after, err := f.clear.Execute(ctx, 1)
		require.NoError(t, err)
		assert.True(t, after.IsEmpty())
		assert.Equal(t, c.ID, after.ID)
	})

	t.Run("空购物车清空同样成功", func(t *testing.T) {
		after, err := f.clear.Execute(ctx, 1)
		require.NoError(t, err)
		assert.True(t, after.IsEmpty())
	})
}

func TestConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, f.category, "Gift Box", "10.00", 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.add.Execute(ctx, AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := f.get.Execute(ctx, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 10, c.Items[0].Quantity)
}
