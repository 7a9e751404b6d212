// Package router 组装Gin引擎：全局中间件、运维接口和/api/v1路由
package router

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/interface/http/handler"
	"github.com/xiebiao/moongift/internal/interface/http/middleware"
	"github.com/xiebiao/moongift/pkg/validate"
)

var registerOnce sync.Once

// Handlers 路由需要的全部处理器
type Handlers struct {
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Contact *handler.ContactHandler
	Admin   *handler.AdminHandler
}

// Options 引擎选项
type Options struct {
	Mode          string // debug | release | test
	EnableSwagger bool
}

// New 创建Gin引擎并注册路由
//
// 中间件顺序：
//
//	Recovery → Tracing → Logger → Metrics → (RequireAuth → RequireStaff) → Handler
//
// Tracing在Logger之前，日志里才能带上trace_id
func New(opts Options, logger *zap.Logger, auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// gin的binding校验器与validate包共用phone规则和json字段名
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validate.Register(v)
		}
	})

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Tracing(),
		middleware.Logger(logger),
		middleware.Metrics(),
	)

	// 运维接口
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.EnableSwagger {
		// 访问 http://localhost:8080/swagger/index.html 查看API文档
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// 公开接口
	v1.GET("/categories", h.Product.ListCategories)
	products := v1.Group("/products")
	{
		products.GET("", h.Product.ListProducts)
		products.GET("/featured", h.Product.Featured)
		products.GET("/:slug", h.Product.GetProduct)
	}
	v1.POST("/contact", h.Contact.Submit)

	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh", h.User.Refresh)
		users.POST("/logout", auth.RequireAuth(), h.User.Logout)
	}

	// 需要登录
	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())
	{
		authorized.GET("/profile", h.User.Profile)

		cart := authorized.Group("/cart")
		{
			cart.GET("", h.Cart.GetCart)
			cart.DELETE("", h.Cart.Clear)
			cart.POST("/items", h.Cart.AddItem)
			cart.PUT("/items/:item_id", h.Cart.UpdateItem)
			cart.DELETE("/items/:item_id", h.Cart.RemoveItem)
		}

		orders := authorized.Group("/orders")
		{
			orders.GET("", h.Order.ListOrders)
			orders.POST("", h.Order.CreateOrder)
			orders.GET("/:order_id", h.Order.GetOrder)
			orders.POST("/:order_id/cancel", h.Order.CancelOrder)
		}
	}

	// 后台管理（仅管理员）
	admin := v1.Group("/admin")
	admin.Use(auth.RequireAuth(), auth.RequireStaff())
	{
		admin.GET("/products", h.Admin.ListProducts)
		admin.POST("/products", h.Admin.CreateProduct)
		admin.PUT("/products/:id", h.Admin.UpdateProduct)
		admin.DELETE("/products/:id", h.Admin.DeleteProduct)
		admin.POST("/categories", h.Admin.CreateCategory)

		admin.GET("/orders", h.Admin.ListOrders)
		admin.PATCH("/orders/:order_id", h.Admin.UpdateOrder)

		admin.GET("/contact-messages", h.Admin.ListMessages)
		admin.POST("/contact-messages/:id/read", h.Admin.MarkRead)
		admin.POST("/contact-messages/:id/unread", h.Admin.MarkUnread)
	}

	return r
}
