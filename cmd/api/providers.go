package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apporder "github.com/xiebiao/moongift/internal/application/order"
	"github.com/xiebiao/moongift/internal/domain/cart"
	"github.com/xiebiao/moongift/internal/domain/order"
	"github.com/xiebiao/moongift/internal/infrastructure/config"
	"github.com/xiebiao/moongift/internal/infrastructure/lock"
	"github.com/xiebiao/moongift/internal/infrastructure/messaging"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/moongift/internal/interface/http/handler"
	"github.com/xiebiao/moongift/internal/interface/http/middleware"
	"github.com/xiebiao/moongift/internal/interface/http/router"
	"github.com/xiebiao/moongift/pkg/circuitbreaker"
	"github.com/xiebiao/moongift/pkg/jwt"
	"github.com/xiebiao/moongift/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取，
// 或者要根据配置在多个实现之间选择，这时需要编写自定义Provider函数

// provideRedisClient 创建Redis连接，cleanup时关闭
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideCartLocker 按cart.lock_backend选择购物车锁
//   - local: 单实例部署，进程内互斥
//   - redis: 多实例部署，Redis分布式锁
func provideCartLocker(cfg *config.Config, client *goredis.Client) cart.Locker {
	if cfg.Cart.LockBackend == config.LockBackendRedis {
		return redis.NewCartLocker(client, cfg.Cart.LockTTL, cfg.Cart.LockWait)
	}
	return lock.NewLocalLocker()
}

// provideOrderCache 订单详情缓存，关闭时退化为直接查库
func provideOrderCache(cfg *config.Config, client *goredis.Client) apporder.Cache {
	if !cfg.Cache.Enabled {
		return apporder.NopCache{}
	}
	return redis.NewOrderCache(client, cfg.Cache.OrderTTL)
}

// provideEventPublisher 订单事件发布
// 未启用消息队列时使用空实现；启用时发布经过熔断器保护
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("order events enabled",
		zap.String("exchange", cfg.MQ.Exchange),
		zap.String("exchange_type", cfg.MQ.ExchangeType),
	)

	breaker := circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.DefaultConfig())
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close mq publisher failed", zap.Error(err))
		}
	}
	return messaging.NewOrderEventPublisher(publisher, breaker), cleanup, nil
}

// provideGinEngine 组装路由
func provideGinEngine(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	contactHandler *handler.ContactHandler,
	adminHandler *handler.AdminHandler,
) *gin.Engine {
	return router.New(
		router.Options{
			Mode: cfg.Server.Mode,
			// 生产环境不暴露Swagger
			EnableSwagger: cfg.Server.Mode != gin.ReleaseMode,
		},
		logger,
		authMiddleware,
		router.Handlers{
			User:    userHandler,
			Product: productHandler,
			Cart:    cartHandler,
			Order:   orderHandler,
			Contact: contactHandler,
			Admin:   adminHandler,
		},
	)
}
