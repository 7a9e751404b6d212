package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/moongift/internal/application/cart"
	"github.com/xiebiao/moongift/internal/interface/http/dto"
	"github.com/xiebiao/moongift/internal/interface/http/middleware"
	"github.com/xiebiao/moongift/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 所有接口都需要登录，写操作返回 {message, cart}
type CartHandler struct {
	getUseCase    *appcart.GetCartUseCase
	addUseCase    *appcart.AddItemUseCase
	updateUseCase *appcart.UpdateItemUseCase
	removeUseCase *appcart.RemoveItemUseCase
	clearUseCase  *appcart.ClearCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getUseCase *appcart.GetCartUseCase,
	addUseCase *appcart.AddItemUseCase,
	updateUseCase *appcart.UpdateItemUseCase,
	removeUseCase *appcart.RemoveItemUseCase,
	clearUseCase *appcart.ClearCartUseCase,
) *CartHandler {
	return &CartHandler{
		getUseCase:    getUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		removeUseCase: removeUseCase,
		clearUseCase:  clearUseCase,
	}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Description  首次访问时自动创建空购物车，价格按商品当前价格计算
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CartResponse
// @Failure      401 {object} response.ErrorBody "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartResponse(result))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一商品再次加入时累加数量，累计超过99时按99处理
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品和数量（缺省1）"
// @Success      201 {object} map[string]interface{} "{message, cart}"
// @Failure      400 {object} response.ErrorBody "数量超出范围或商品已下架"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.addUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:    middleware.MustGetUserID(c),
		ProductID: req.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusCreated, "已加入购物车", "cart", dto.NewCartResponse(result))
}

// UpdateItem 修改数量
// @Summary      修改购物车数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item_id path int                       true "购物车明细ID"
// @Param        request body dto.UpdateCartItemRequest true "数量（1-99）"
// @Success      200 {object} map[string]interface{} "{message, cart}"
// @Failure      400 {object} response.ErrorBody "数量超出范围"
// @Failure      404 {object} response.ErrorBody "明细不存在"
// @Router       /api/v1/cart/items/{item_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   middleware.MustGetUserID(c),
		ItemID:   itemID,
		Quantity: *req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusOK, "购物车已更新", "cart", dto.NewCartResponse(result))
}

// RemoveItem 删除明细
// @Summary      删除购物车商品
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        item_id path int true "购物车明细ID"
// @Success      200 {object} map[string]interface{} "{message, cart}"
// @Failure      404 {object} response.ErrorBody "明细不存在"
// @Router       /api/v1/cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusOK, "商品已移出购物车", "cart", dto.NewCartResponse(result))
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{} "{message, cart}"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	result, err := h.clearUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusOK, "购物车已清空", "cart", dto.NewCartResponse(result))
}
