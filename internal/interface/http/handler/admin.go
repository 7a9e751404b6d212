package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcontact "github.com/xiebiao/moongift/internal/application/contact"
	apporder "github.com/xiebiao/moongift/internal/application/order"
	appproduct "github.com/xiebiao/moongift/internal/application/product"
	"github.com/xiebiao/moongift/internal/domain/contact"
	"github.com/xiebiao/moongift/internal/interface/http/dto"
	"github.com/xiebiao/moongift/pkg/response"
)

// AdminHandler 后台管理接口
// 路由组统一挂RequireAuth + RequireStaff，这里不再判断权限
type AdminHandler struct {
	listProductsUseCase   *appproduct.AdminListProductsUseCase
	createProductUseCase  *appproduct.CreateProductUseCase
	updateProductUseCase  *appproduct.UpdateProductUseCase
	deleteProductUseCase  *appproduct.DeleteProductUseCase
	createCategoryUseCase *appproduct.CreateCategoryUseCase
	listOrdersUseCase     *apporder.AdminListOrdersUseCase
	updateOrderUseCase    *apporder.UpdateOrderStatusUseCase
	listMessagesUseCase   *appcontact.ListMessagesUseCase
	markMessageUseCase    *appcontact.MarkMessageUseCase
}

// NewAdminHandler 创建后台处理器
func NewAdminHandler(
	listProductsUseCase *appproduct.AdminListProductsUseCase,
	createProductUseCase *appproduct.CreateProductUseCase,
	updateProductUseCase *appproduct.UpdateProductUseCase,
	deleteProductUseCase *appproduct.DeleteProductUseCase,
	createCategoryUseCase *appproduct.CreateCategoryUseCase,
	listOrdersUseCase *apporder.AdminListOrdersUseCase,
	updateOrderUseCase *apporder.UpdateOrderStatusUseCase,
	listMessagesUseCase *appcontact.ListMessagesUseCase,
	markMessageUseCase *appcontact.MarkMessageUseCase,
) *AdminHandler {
	return &AdminHandler{
		listProductsUseCase:   listProductsUseCase,
		createProductUseCase:  createProductUseCase,
		updateProductUseCase:  updateProductUseCase,
		deleteProductUseCase:  deleteProductUseCase,
		createCategoryUseCase: createCategoryUseCase,
		listOrdersUseCase:     listOrdersUseCase,
		updateOrderUseCase:    updateOrderUseCase,
		listMessagesUseCase:   listMessagesUseCase,
		markMessageUseCase:    markMessageUseCase,
	}
}

// =========================================
// 商品与分类
// =========================================

// ListProducts 后台商品列表
// @Summary      后台商品列表
// @Description  包含下架商品，查询参数与前台一致
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.PageData{list=[]dto.AdminProductResponse}
// @Failure      403 {object} response.ErrorBody "无权限"
// @Router       /api/v1/admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	req := listRequest(c)
	products, total, err := h.listProductsUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, dto.NewAdminProductList(products), total, req.Page, req.PageSize)
}

// CreateProduct 新增商品
// @Summary      新增商品
// @Tags         后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      201 {object} dto.AdminProductResponse
// @Failure      400 {object} response.ErrorBody "价格或折扣不合法"
// @Router       /api/v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.createProductUseCase.Execute(c.Request.Context(), productInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAdminProductResponse(p))
}

// UpdateProduct 编辑商品
// @Summary      编辑商品
// @Description  整体覆盖商品字段
// @Tags         后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "商品ID"
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      200 {object} dto.AdminProductResponse
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /api/v1/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.updateProductUseCase.Execute(c.Request.Context(), id, productInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAdminProductResponse(p))
}

// DeleteProduct 删除商品
// @Summary      删除商品
// @Description  软删除，同时从所有购物车中移除；历史订单明细保留快照
// @Tags         后台
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /api/v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.deleteProductUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCategory 新增分类
// @Summary      新增分类
// @Tags         后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} dto.CategoryResponse
// @Failure      400 {object} response.ErrorBody "名称为空或slug重复"
// @Router       /api/v1/admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := h.createCategoryUseCase.Execute(c.Request.Context(), appproduct.CreateCategoryRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCategoryResponse(category))
}

func productInput(req dto.ProductRequest) appproduct.ProductInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return appproduct.ProductInput{
		CategoryID:         req.Category,
		Name:               req.Name,
		Slug:               req.Slug,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Image:              req.Image,
		Image2:             req.Image2,
		Image3:             req.Image3,
		UzumLink:           req.UzumLink,
		YandexMarketLink:   req.YandexMarketLink,
		IsFeatured:         req.IsFeatured,
		IsActive:           isActive,
	}
}

// =========================================
// 订单
// =========================================

// ListOrders 后台订单列表
// @Summary      后台订单列表
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "pending/processing/shipped/delivered/cancelled"
// @Param        user_id   query int    false "用户ID"
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Success      200 {object} response.PageData{list=[]dto.OrderResponse}
// @Failure      400 {object} response.ErrorBody "状态值非法"
// @Router       /api/v1/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	userID, err := uintQuery(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, pageSize := pageQuery(c, defaultPageSize)

	orders, total, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.AdminListOrdersRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		UserID:   userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, dto.NewOrderList(orders), total, page, pageSize)
}

// UpdateOrder 修改订单状态/备注
// @Summary      修改订单状态/备注
// @Description  已送达或已取消的订单不能再修改状态
// @Tags         后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_id path int                    true "订单ID"
// @Param        request  body dto.UpdateOrderRequest true "status和notes均可选"
// @Success      200 {object} map[string]interface{} "{message, order}"
// @Failure      400 {object} response.ErrorBody "状态非法或不允许变更"
// @Failure      404 {object} response.ErrorBody "订单不存在"
// @Router       /api/v1/admin/orders/{order_id} [patch]
func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	o, err := h.updateOrderUseCase.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID: orderID,
		Status:  req.Status,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusOK, "订单已更新", "order", dto.NewOrderResponse(o))
}

// =========================================
// 留言
// =========================================

// ListMessages 留言列表
// @Summary      留言列表
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        is_read   query bool false "按已读状态过滤"
// @Param        page      query int  false "页码"
// @Param        page_size query int  false "每页数量"
// @Success      200 {object} response.PageData{list=[]dto.ContactMessageResponse}
// @Router       /api/v1/admin/contact-messages [get]
func (h *AdminHandler) ListMessages(c *gin.Context) {
	isRead, err := boolQuery(c, "is_read")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, pageSize := pageQuery(c, defaultPageSize)

	messages, total, err := h.listMessagesUseCase.Execute(c.Request.Context(), contact.ListParams{
		Page:     page,
		PageSize: pageSize,
		IsRead:   isRead,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, dto.NewContactMessageList(messages), total, page, pageSize)
}

// MarkRead 标记已读
// @Summary      标记留言已读
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "留言ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.ErrorBody "留言不存在"
// @Router       /api/v1/admin/contact-messages/{id}/read [post]
func (h *AdminHandler) MarkRead(c *gin.Context) {
	h.mark(c, true)
}

// MarkUnread 标记未读
// @Summary      标记留言未读
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "留言ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.ErrorBody "留言不存在"
// @Router       /api/v1/admin/contact-messages/{id}/unread [post]
func (h *AdminHandler) MarkUnread(c *gin.Context) {
	h.mark(c, false)
}

func (h *AdminHandler) mark(c *gin.Context, read bool) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.markMessageUseCase.Execute(c.Request.Context(), id, read); err != nil {
		response.Error(c, err)
		return
	}

	message := "已标记为未读"
	if read {
		message = "已标记为已读"
	}
	response.OK(c, gin.H{"message": message})
}
