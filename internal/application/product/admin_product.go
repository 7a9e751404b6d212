package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// ProductInput 后台新增/编辑商品的字段
// 编辑时整体覆盖,Slug为空时由名称生成
type ProductInput struct {
	CategoryID         uint
	Name               string
	Slug               string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage int
	Image              string
	Image2             string
	Image3             string
	UzumLink           string
	YandexMarketLink   string
	IsFeatured         bool
	IsActive           bool
}

func (in ProductInput) applyTo(p *product.Product) {
	p.CategoryID = in.CategoryID
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = strings.TrimSpace(in.Slug)
	p.Description = in.Description
	p.Price = in.Price
	p.DiscountPercentage = in.DiscountPercentage
	p.Image = in.Image
	p.Image2 = in.Image2
	p.Image3 = in.Image3
	p.UzumLink = in.UzumLink
	p.YandexMarketLink = in.YandexMarketLink
	p.IsFeatured = in.IsFeatured
	p.IsActive = in.IsActive
}

// AdminListProductsUseCase 后台商品列表,包含下架商品
type AdminListProductsUseCase struct {
	productRepo product.Repository
}

// NewAdminListProductsUseCase 创建后台商品列表用例
func NewAdminListProductsUseCase(productRepo product.Repository) *AdminListProductsUseCase {
	return &AdminListProductsUseCase{productRepo: productRepo}
}

func (uc *AdminListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) ([]*product.Product, int64, error) {
	return uc.productRepo.List(ctx, toListParams(req, true))
}

// CreateProductUseCase 新增商品
// 价格、折扣、分类的校验由领域服务负责
type CreateProductUseCase struct {
	productService product.Service
	productRepo    product.Repository
}

// NewCreateProductUseCase 创建新增商品用例
func NewCreateProductUseCase(productService product.Service, productRepo product.Repository) *CreateProductUseCase {
	return &CreateProductUseCase{productService: productService, productRepo: productRepo}
}

// Execute 新增商品,返回包含分类信息的商品
func (uc *CreateProductUseCase) Execute(ctx context.Context, in ProductInput) (*product.Product, error) {
	p := &product.Product{}
	in.applyTo(p)
	if err := uc.productService.Create(ctx, p); err != nil {
		return nil, err
	}
	zap.L().Info("product created", zap.Uint("product_id", p.ID), zap.String("slug", p.Slug))
	return uc.productRepo.FindByID(ctx, p.ID)
}

// UpdateProductUseCase 编辑商品
type UpdateProductUseCase struct {
	productService product.Service
	productRepo    product.Repository
}

// NewUpdateProductUseCase 创建编辑商品用例
func NewUpdateProductUseCase(productService product.Service, productRepo product.Repository) *UpdateProductUseCase {
	return &UpdateProductUseCase{productService: productService, productRepo: productRepo}
}

// Execute 覆盖全部可编辑字段
// 已在购物车中的商品改价后,购物车合计随之变化;已下单的订单不受影响
func (uc *UpdateProductUseCase) Execute(ctx context.Context, id uint, in ProductInput) (*product.Product, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.applyTo(p)
	if err := uc.productService.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.productRepo.FindByID(ctx, id)
}

// DeleteProductUseCase 删除商品
// 设计说明:
// 1. 商品软删除,历史订单通过名称快照继续展示
// 2. 同一事务中从所有购物车移除该商品,避免结算时带上已删除商品
type DeleteProductUseCase struct {
	productRepo  product.Repository
	cartItemRepo cart.ItemRepository
	txManager    *mysql.TxManager
}

// NewDeleteProductUseCase 创建删除商品用例
func NewDeleteProductUseCase(productRepo product.Repository, cartItemRepo cart.ItemRepository, txManager *mysql.TxManager) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo, cartItemRepo: cartItemRepo, txManager: txManager}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uint) error {
	var removed int64
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.productRepo.Delete(txCtx, id); err != nil {
			return err
		}
		n, err := uc.cartItemRepo.DeleteByProductID(txCtx, id)
		removed = n
		return err
	})
	if err != nil {
		return err
	}
	zap.L().Info("product deleted", zap.Uint("product_id", id), zap.Int64("cart_items_removed", removed))
	return nil
}

// CreateCategoryUseCase 新增分类
type CreateCategoryUseCase struct {
	categoryRepo product.CategoryRepository
}

// NewCreateCategoryUseCase 创建新增分类用例
func NewCreateCategoryUseCase(categoryRepo product.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// CreateCategoryRequest 新增分类请求,Slug为空时由名称生成
type CreateCategoryRequest struct {
	Name        string
	Slug        string
	Description string
	Image       string
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*product.Category, error) {
	c := &product.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
		Image:       req.Image,
	}
	if c.Name == "" {
		return nil, apperrors.ErrInvalidParams.WithField("name", "不能为空")
	}
	if c.Slug == "" {
		c.Slug = product.Slugify(c.Name)
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
