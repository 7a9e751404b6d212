package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/moongift/docs" // swagger文档，由swag init生成
	"github.com/xiebiao/moongift/internal/infrastructure/config"
	"github.com/xiebiao/moongift/internal/infrastructure/logger"
	"github.com/xiebiao/moongift/pkg/metrics"
	"github.com/xiebiao/moongift/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// @title                      MoonGift API
// @version                    1.0
// @description                礼品商城后端：商品目录、购物车、订单、留言
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

// main API服务启动入口
//
// 启动顺序：
// 1. 加载配置 → 初始化Logger（后续组件的日志都走zap.L()）
// 2. 链路追踪（可选）
// 3. Wire组装依赖：DB → Repository → UseCase → Handler → Router
// 4. 启动HTTP服务，收到SIGINT/SIGTERM后优雅关闭
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	flush := logger.MustSetup(cfg.Log)
	defer flush()
	zlog := zap.L()

	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("init tracer failed", zap.Error(err))
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				zlog.Warn("shutdown tracer failed", zap.Error(err))
			}
		}()
		zlog.Info("tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("initialize app failed", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("http server started",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("cart_lock", cfg.Cart.LockBackend),
			zap.Bool("order_cache", cfg.Cache.Enabled),
			zap.Bool("order_events", cfg.MQ.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zlog.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("http server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
