package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/internal/testutil"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

func TestCatalogQueries(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	productRepo := mysql.NewProductRepository(db)
	flowers := testutil.SeedCategory(t, db, "Flowers")
	sweets := testutil.SeedCategory(t, db, "Sweets")

	rose := testutil.SeedProduct(t, db, flowers, "Red Rose", "120.00", 0)
	testutil.SeedProduct(t, db, flowers, "White Lily", "80.00", 0)
	testutil.SeedProduct(t, db, sweets, "Dark Chocolate", "45.50", 10)
	hidden := testutil.SeedProduct(t, db, flowers, "Dry Tulip", "10.00", 0)
	hidden.IsActive = false
	require.NoError(t, productRepo.Update(ctx, hidden))
	rose.IsFeatured = true
	require.NoError(t, productRepo.Update(ctx, rose))

	list := NewListProductsUseCase(productRepo)

	t.Run("只返回在售商品", func(t *testing.T) {
		products, total, err := list.Execute(ctx, ListProductsRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, products, 3)
	})

	t.Run("价格参数无法解析时忽略", func(t *testing.T) {
		_, total, err := list.Execute(ctx, ListProductsRequest{MinPrice: "abc", MaxPrice: "100"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("按分类和排序", func(t *testing.T) {
		products, _, err := list.Execute(ctx, ListProductsRequest{Category: "flowers", Ordering: product.OrderingPrice})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "White Lily", products[0].Name)
	})

	t.Run("详情附带同分类商品", func(t *testing.T) {
		detail, err := NewGetProductUseCase(productRepo).Execute(ctx, rose.Slug)
		require.NoError(t, err)
		assert.Equal(t, rose.ID, detail.Product.ID)
		assert.Equal(t, "Flowers", detail.Product.CategoryName())
		require.Len(t, detail.Similar, 1)
		assert.Equal(t, "White Lily", detail.Similar[0].Name)
	})

	t.Run("下架商品详情不存在", func(t *testing.T) {
		_, err := NewGetProductUseCase(productRepo).Execute(ctx, hidden.Slug)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("推荐商品", func(t *testing.T) {
		featured, err := NewFeaturedProductsUseCase(productRepo).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, rose.ID, featured[0].ID)
	})

	t.Run("分类统计在售商品数", func(t *testing.T) {
		categories, err := NewListCategoriesUseCase(mysql.NewCategoryRepository(db)).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.EqualValues(t, 2, categories[0].ProductCount)
		assert.EqualValues(t, 1, categories[1].ProductCount)
	})

	t.Run("后台列表包含下架商品", func(t *testing.T) {
		_, total, err := NewAdminListProductsUseCase(productRepo).Execute(ctx, ListProductsRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
	})
}

func TestAdminProducts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	service := product.NewService(productRepo, categoryRepo)
	category := testutil.SeedCategory(t, db, "Home")

	create := NewCreateProductUseCase(service, productRepo)
	update := NewUpdateProductUseCase(service, productRepo)

	input := ProductInput{
		CategoryID:         category.ID,
		Name:               "Scented Candle",
		Price:              decimal.RequireFromString("75.00"),
		DiscountPercentage: 20,
		IsActive:           true,
	}

	var created *product.Product
	t.Run("新增商品生成slug", func(t *testing.T) {
		p, err := create.Execute(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "scented-candle", p.Slug)
		assert.Equal(t, "Home", p.CategoryName())
		assert.Equal(t, "60.00", p.DiscountedPrice().StringFixed(2))
		created = p
	})

	t.Run("价格和折扣校验", func(t *testing.T) {
		bad := input
		bad.Price = decimal.Zero
		_, err := create.Execute(ctx, bad)
		assert.ErrorIs(t, err, product.ErrInvalidPrice)

		bad = input
		bad.DiscountPercentage = 101
		_, err = create.Execute(ctx, bad)
		assert.ErrorIs(t, err, product.ErrInvalidDiscount)

		bad = input
		bad.CategoryID = 999
		_, err = create.Execute(ctx, bad)
		assert.ErrorIs(t, err, product.ErrCategoryNotFound)
	})

	t.Run("编辑商品", func(t *testing.T) {
		changed := input
		changed.Slug = created.Slug
		changed.Price = decimal.RequireFromString("90.00")
		changed.IsActive = false
		p, err := update.Execute(ctx, created.ID, changed)
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(90)))
		assert.False(t, p.IsActive)

		_, err = update.Execute(ctx, 999, changed)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("新增分类", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(categoryRepo)
		c, err := uc.Execute(ctx, CreateCategoryRequest{Name: "Kids Toys"})
		require.NoError(t, err)
		assert.Equal(t, "kids-toys", c.Slug)

		_, err = uc.Execute(ctx, CreateCategoryRequest{Name: "Kids Toys"})
		assert.ErrorIs(t, err, product.ErrSlugDuplicate)

		_, err = uc.Execute(ctx, CreateCategoryRequest{Name: "  "})
		assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	itemRepo := mysql.NewCartItemRepository(db)
	category := testutil.SeedCategory(t, db, "Gifts")
	p := testutil.SeedProduct(t, db, category, "Poems", "30.00", 0)
	other := testutil.SeedProduct(t, db, category, "Novel", "40.00", 0)

	for _, userID := range []uint{1, 2} {
		c := cart.NewCart(userID)
		require.NoError(t, cartRepo.Create(ctx, c))
		require.NoError(t, itemRepo.Create(ctx, &cart.CartItem{CartID: c.ID, ProductID: p.ID, Quantity: 1}))
		require.NoError(t, itemRepo.Create(ctx, &cart.CartItem{CartID: c.ID, ProductID: other.ID, Quantity: 2}))
	}

	uc := NewDeleteProductUseCase(productRepo, itemRepo, mysql.NewTxManager(db))

	t.Run("删除商品并从购物车移除", func(t *testing.T) {
		require.NoError(t, uc.Execute(ctx, p.ID))

		_, err := productRepo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, product.ErrProductNotFound)

		for _, userID := range []uint{1, 2} {
			c, err := cartRepo.FindByUserID(ctx, userID)
			require.NoError(t, err)
			require.Len(t, c.Items, 1)
			assert.Equal(t, other.ID, c.Items[0].ProductID)
		}
	})

	t.Run("重复删除返回不存在", func(t *testing.T) {
		assert.ErrorIs(t, uc.Execute(ctx, p.ID), product.ErrProductNotFound)
	})
}
