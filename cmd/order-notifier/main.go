package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/moongift/internal/infrastructure/config"
	"github.com/xiebiao/moongift/internal/infrastructure/logger"
	"github.com/xiebiao/moongift/internal/infrastructure/messaging"
	"github.com/xiebiao/moongift/pkg/metrics"
	"github.com/xiebiao/moongift/pkg/mq"
)

// orderRoutingKeys 订阅全部订单事件
var orderRoutingKeys = []string{"order.*"}

// main 订单事件消费者
//
// 教学要点：
// 1. API服务在事务提交后发布order.created / order.cancelled / order.status_changed
// 2. 本进程只做通知类处理（目前是结构化日志），失败的消息Nack后重新入队
// 3. 收到SIGINT/SIGTERM后ctx取消，Consume返回，关闭连接
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	flush := logger.MustSetup(cfg.Log)
	defer flush()
	zlog := zap.L().Named("order-notifier")

	if !cfg.MQ.Enabled {
		zlog.Fatal("mq.enabled is false, nothing to consume")
	}

	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, orderRoutingKeys)
	if err != nil {
		zlog.Fatal("create consumer failed", zap.Error(err))
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			zlog.Warn("close consumer failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Info("order notifier started",
		zap.String("exchange", cfg.MQ.Exchange),
		zap.String("queue", cfg.MQ.Queue),
	)
	if err := consumer.Consume(ctx, messaging.NewOrderEventHandler(zlog)); err != nil {
		zlog.Error("consume stopped", zap.Error(err))
	}
}
