package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcontact "github.com/xiebiao/moongift/internal/application/contact"
	"github.com/xiebiao/moongift/internal/interface/http/dto"
	"github.com/xiebiao/moongift/pkg/response"
)

// ContactHandler 联系留言（公开接口）
type ContactHandler struct {
	submitUseCase *appcontact.SubmitMessageUseCase
}

// NewContactHandler 创建留言处理器
func NewContactHandler(submitUseCase *appcontact.SubmitMessageUseCase) *ContactHandler {
	return &ContactHandler{submitUseCase: submitUseCase}
}

// Submit 提交留言
// @Summary      提交留言
// @Description  无需登录，字段错误按字段返回
// @Tags         留言
// @Accept       json
// @Produce      json
// @Param        request body dto.ContactRequest true "留言内容"
// @Success      201 {object} map[string]interface{} "{message, data}"
// @Failure      400 {object} response.ErrorBody "字段校验失败"
// @Router       /api/v1/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	msg, err := h.submitUseCase.Execute(c.Request.Context(), appcontact.SubmitMessageRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, http.StatusCreated, "留言已收到，我们会尽快联系您", "data", dto.NewContactMessageResponse(msg))
}
