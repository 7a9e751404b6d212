// Package circuitbreaker 熔断器,基于sony/gobreaker
//
// 三种状态:
//   - CLOSED: 正常放行,统计失败次数
//   - OPEN: 快速失败,不调用下游,Timeout后进入HALF_OPEN
//   - HALF_OPEN: 放行MaxRequests个探测请求,成功则CLOSED,失败回到OPEN
//
// 订单事件发布使用熔断器保护:RabbitMQ故障时快速失败,不拖慢下单请求
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/xiebiao/moongift/pkg/metrics"
)

// State 熔断器状态
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

// Counts 统计数据
type Counts = gobreaker.Counts

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的探测请求数
	MaxRequests uint32

	// Interval CLOSED状态下统计窗口,到期清零;为0时不清零
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// ReadyToTrip 判断是否打开熔断器,为nil时连续失败5次打开
	ReadyToTrip func(counts Counts) bool
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: ConsecutiveFailures(5),
	}
}

// ConsecutiveFailures 连续失败n次打开
func ConsecutiveFailures(n uint32) func(Counts) bool {
	return func(c Counts) bool {
		return c.ConsecutiveFailures >= n
	}
}

// FailureRate 请求数达到minRequests且失败率超过rate时打开
func FailureRate(minRequests uint32, rate float64) func(Counts) bool {
	return func(c Counts) bool {
		if c.Requests < minRequests {
			return false
		}
		return float64(c.TotalFailures)/float64(c.Requests) >= rate
	}
}

// CircuitBreaker 熔断器
// 状态变化时记录日志并更新circuit_breaker_state指标
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, cfg Config) *CircuitBreaker {
	metrics.InitMetrics()

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, stateValue(to))
		},
	}
	if cfg.ReadyToTrip != nil {
		settings.ReadyToTrip = cfg.ReadyToTrip
	} else {
		settings.ReadyToTrip = ConsecutiveFailures(5)
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, 0)
	return &CircuitBreaker{
		name: name,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Execute 执行请求
// OPEN或半开请求数已满时返回ErrOpen/ErrTooManyRequests,不调用fn
func (c *CircuitBreaker) Execute(fn func() error) error {
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})

	result := metrics.Result(err)
	if IsRejected(err) {
		result = "rejected"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": c.name, "result": result})
	return err
}

// State 当前状态
func (c *CircuitBreaker) State() State {
	return c.cb.State()
}

// Counts 当前统计数据
func (c *CircuitBreaker) Counts() Counts {
	return c.cb.Counts()
}

// Name 熔断器名称
func (c *CircuitBreaker) Name() string {
	return c.name
}

var (
	// ErrOpen 熔断器打开
	ErrOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests 半开状态探测请求数已满
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
)

// IsRejected 是否被熔断器拒绝(未调用下游)
func IsRejected(err error) bool {
	return errors.Is(err, ErrOpen) || errors.Is(err, ErrTooManyRequests)
}

// stateValue 指标取值: 0=CLOSED, 1=OPEN, 2=HALF_OPEN
func stateValue(s State) float64 {
	switch s {
	case StateOpen:
		return 1
	case StateHalfOpen:
		return 2
	default:
		return 0
	}
}
