package response

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
	"github.com/xiebiao/moongift/pkg/validate"
)

// ErrorBody 错误响应结构
// 设计说明：
// 1. HTTP状态码由业务错误码推导（400/401/403/404/500）
// 2. Code是业务错误码，方便客户端细分错误类型
// 3. Errors是字段级错误，仅参数校验失败时返回
type ErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK 200响应，data原样输出
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// WithMessage 输出 {message, <key>: data} 结构
// 用法：
//
//	response.WithMessage(c, http.StatusCreated, "已加入购物车", "cart", view)
func WithMessage(c *gin.Context, status int, message, key string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		key:       data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误记录到日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(appErr),
		)
	}

	c.JSON(status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// BindError 参数绑定失败
// validator的字段错误转换为 field → message，其它错误（如JSON格式错误）统一返回40901
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		Error(c, apperrors.Validation(validate.Fields(verrs)))
		return
	}
	Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Page 分页成功响应
func Page(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	OK(c, NewPageData(list, total, page, pageSize))
}
