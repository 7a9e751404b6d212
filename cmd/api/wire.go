//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. Wire在编译期生成代码，零运行时开销，循环依赖在生成时就能发现
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/moongift/internal/application/cart"
	appcontact "github.com/xiebiao/moongift/internal/application/contact"
	apporder "github.com/xiebiao/moongift/internal/application/order"
	appproduct "github.com/xiebiao/moongift/internal/application/product"
	appuser "github.com/xiebiao/moongift/internal/application/user"
	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/domain/user"
	"github.com/xiebiao/moongift/internal/infrastructure/config"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/moongift/internal/interface/http/handler"
	"github.com/xiebiao/moongift/internal/interface/http/middleware"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：数据库、Redis、会话、购物车锁、订单缓存、事件发布
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	provideRedisClient,
	redis.NewSessionStore,
	provideCartLocker,
	provideOrderCache,
	provideEventPublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCategoryRepository,
	mysql.NewProductRepository,
	mysql.NewCartRepository,
	mysql.NewCartItemRepository,
	mysql.NewOrderRepository,
	mysql.NewContactRepository,
	mysql.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	product.NewService,
)

// applicationSet 应用层Use Case
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewGetProfileUseCase,

	appproduct.NewListProductsUseCase,
	appproduct.NewGetProductUseCase,
	appproduct.NewFeaturedProductsUseCase,
	appproduct.NewListCategoriesUseCase,
	appproduct.NewAdminListProductsUseCase,
	appproduct.NewCreateProductUseCase,
	appproduct.NewUpdateProductUseCase,
	appproduct.NewDeleteProductUseCase,
	appproduct.NewCreateCategoryUseCase,

	appcart.NewStore,
	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	appcart.NewClearCartUseCase,

	apporder.NewCreateOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewAdminListOrdersUseCase,
	apporder.NewUpdateOrderStatusUseCase,

	appcontact.NewSubmitMessageUseCase,
	appcontact.NewListMessagesUseCase,
	appcontact.NewMarkMessageUseCase,
)

// middlewareSet JWT管理器、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewContactHandler,
	handler.NewAdminHandler,
)

// InitializeApp 初始化整个应用
// 配置和Logger由main先创建（启动日志、链路追踪需要更早使用）
// 返回的cleanup按创建的逆序关闭MQ、Redis
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil, nil
}
