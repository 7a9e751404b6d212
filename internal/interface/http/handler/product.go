package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/moongift/internal/application/product"
	"github.com/xiebiao/moongift/internal/interface/http/dto"
	"github.com/xiebiao/moongift/pkg/response"
)

// 前台商品列表默认每页数量
const defaultProductPageSize = 12

// ProductHandler 商品目录（公开接口）
type ProductHandler struct {
	listUseCase       *appproduct.ListProductsUseCase
	getUseCase        *appproduct.GetProductUseCase
	featuredUseCase   *appproduct.FeaturedProductsUseCase
	categoriesUseCase *appproduct.ListCategoriesUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	listUseCase *appproduct.ListProductsUseCase,
	getUseCase *appproduct.GetProductUseCase,
	featuredUseCase *appproduct.FeaturedProductsUseCase,
	categoriesUseCase *appproduct.ListCategoriesUseCase,
) *ProductHandler {
	return &ProductHandler{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		featuredUseCase:   featuredUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// listRequest 解析列表查询参数，前台和后台共用
func listRequest(c *gin.Context) appproduct.ListProductsRequest {
	page, pageSize := pageQuery(c, defaultProductPageSize)
	return appproduct.ListProductsRequest{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
}

// ListProducts 商品列表
// @Summary      商品列表
// @Description  只返回在售商品，支持分类、价格区间、关键字和排序
// @Tags         商品
// @Produce      json
// @Param        category  query string false "分类slug"
// @Param        min_price query string false "最低价"
// @Param        max_price query string false "最高价"
// @Param        search    query string false "名称或描述关键字"
// @Param        ordering  query string false "price, -price, name, -name, created_at, -created_at"
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Success      200 {object} response.PageData{list=[]dto.ProductResponse}
// @Router       /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	req := listRequest(c)
	products, total, err := h.listUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, dto.NewProductList(products), total, req.Page, req.PageSize)
}

// GetProduct 商品详情
// @Summary      商品详情
// @Description  按slug查询在售商品，附带同分类的相似商品
// @Tags         商品
// @Produce      json
// @Param        slug path string true "商品slug"
// @Success      200 {object} dto.ProductDetailResponse
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /api/v1/products/{slug} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	detail, err := h.getUseCase.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewProductDetailResponse(detail.Product, detail.Similar))
}

// Featured 推荐商品
// @Summary      推荐商品
// @Tags         商品
// @Produce      json
// @Success      200 {array} dto.ProductResponse
// @Router       /api/v1/products/featured [get]
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.featuredUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewProductList(products))
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         商品
// @Produce      json
// @Success      200 {array} dto.CategoryResponse
// @Router       /api/v1/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCategoryList(categories))
}
