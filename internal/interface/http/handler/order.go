package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/moongift/internal/application/order"
	"github.com/xiebiao/moongift/internal/interface/http/dto"
	"github.com/xiebiao/moongift/internal/interface/http/middleware"
	"github.com/xiebiao/moongift/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	listOrdersUseCase  *apporder.ListOrdersUseCase
	getOrderUseCase    *apporder.GetOrderUseCase
	cancelOrderUseCase *apporder.CancelOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		listOrdersUseCase:  listOrdersUseCase,
		getOrderUseCase:    getOrderUseCase,
		cancelOrderUseCase: cancelOrderUseCase,
	}
}

// CreateOrder 下单
// @Summary      下单
// @Description  把当前购物车转换为订单，成功后购物车被清空
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "收货信息"
// @Success      201 {object} map[string]interface{} "{message, order}"
// @Failure      400 {object} response.ErrorBody "购物车为空或收货信息不合法"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Router       /api/v1/orders [post]
//
// 教学说明：购物车 → 订单的原子性
// 1. 先拿到该用户的购物车锁，和加购、改数量等操作串行
// 2. 事务内锁定购物车行，按当前价格生成订单明细快照
// 3. 同一事务内写订单、清空购物车明细，任一步失败整体回滚
// 4. 事务提交后才发布order.created事件，消息发送失败不影响下单结果
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:   middleware.MustGetUserID(c),
		Shipping: req.ToShipping(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusCreated, "下单成功", "order", dto.NewOrderResponse(result))
}

// ListOrders 我的订单
// @Summary      我的订单
// @Description  最新的订单在前
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.OrderResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.listOrdersUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderList(orders))
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        order_id path int true "订单ID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} response.ErrorBody "订单不存在"
// @Router       /api/v1/orders/{order_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(result))
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  只有待处理(pending)的订单可以取消
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        order_id path int true "订单ID"
// @Success      200 {object} map[string]interface{} "{message, order}"
// @Failure      400 {object} response.ErrorBody "订单状态不允许取消"
// @Failure      404 {object} response.ErrorBody "订单不存在"
// @Router       /api/v1/orders/{order_id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.cancelOrderUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusOK, "订单已取消", "order", dto.NewOrderResponse(result))
}
