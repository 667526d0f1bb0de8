// Package circuitbreaker 熔断器（基于sony/gobreaker）
//
// 设计说明：
// 1. 结算成功后发布order.created事件，RabbitMQ不可用时不能拖慢每一次结算
// 2. 连续失败达到阈值后熔断（OPEN），Timeout后进入HALF_OPEN试探
// 3. 状态变化写入circuit_breaker_state指标并打日志，便于告警
// 4. 状态机本身交给gobreaker，这里只做配置映射和可观测性
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-checkout/pkg/metrics"
)

// ErrOpenState 熔断器打开或半开状态下请求数已满
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置（与config.BreakerConfig对应）
type Config struct {
	// MaxRequests 半开状态允许通过的请求数
	MaxRequests uint32
	// Interval 关闭状态下统计窗口，0表示不清零
	Interval time.Duration
	// Timeout 打开状态持续多久后进入半开
	Timeout time.Duration
	// FailureThreshold 连续失败多少次后熔断
	FailureThreshold uint32
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// New 创建熔断器
func New(name string, cfg Config) *CircuitBreaker {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetCircuitBreakerState(name, stateValue(to))
		},
	}

	metrics.SetCircuitBreakerState(name, stateValue(gobreaker.StateClosed))
	return &CircuitBreaker{
		name: name,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Execute 通过熔断器执行req
// 熔断时不调用req，直接返回ErrOpenState
func (c *CircuitBreaker) Execute(req func() error) error {
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, req()
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.IncCircuitBreakerRequest(c.name, "rejected")
		return ErrOpenState
	case err != nil:
		metrics.IncCircuitBreakerRequest(c.name, "failure")
		return err
	default:
		metrics.IncCircuitBreakerRequest(c.name, "success")
		return nil
	}
}

// State 当前状态（closed/half-open/open）
func (c *CircuitBreaker) State() string {
	return c.cb.State().String()
}

// Name 熔断器名称
func (c *CircuitBreaker) Name() string {
	return c.name
}

// stateValue 指标取值：0=CLOSED, 1=OPEN, 2=HALF_OPEN
func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
