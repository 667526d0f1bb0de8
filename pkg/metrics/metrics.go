// Package metrics 基于Prometheus的指标收集
//
// 设计说明：
// 1. 所有指标在InitMetrics中通过promauto注册到默认Registry，/metrics端点由gin路由暴露
// 2. 购物车操作统一使用cart_operations_total{operation,result}，避免每个操作一个指标
// 3. 结算拒绝按原因分标签（checkout_rejections_total{reason}），reason是有限集合，不会产生高基数
// 4. 不使用cart_id/customer_id做标签（高基数）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	defer metrics.ObserveCartOperation("add_line_item", time.Now(), &err)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initOnce 防止重复注册（重复注册promauto会panic）
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，不是原始URL）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// CartOperationsTotal 购物车操作总数
	// 标签：operation（create/update/add_line_item/remove_line_item/delete/checkout）、result（success/failure）
	CartOperationsTotal *prometheus.CounterVec

	// CartOperationDuration 购物车操作耗时（包含事务与行锁等待）
	CartOperationDuration *prometheus.HistogramVec

	// CheckoutRejectionsTotal 结算前置条件不满足的次数
	// 标签：reason（wrong_customer/cart_inactive/empty_cart/...）
	CheckoutRejectionsTotal *prometheus.CounterVec

	// OrdersCreatedTotal 结算成功生成的订单数
	OrdersCreatedTotal prometheus.Counter

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 消息发布总数
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标（可重复调用）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "购物车操作总数",
		},
		[]string{"operation", "result"},
	)

	// 行锁等待会拉长尾部耗时，桶比HTTP更细
	CartOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_operation_duration_seconds",
			Help:    "购物车操作耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	CheckoutRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_rejections_total",
			Help: "结算前置条件不满足次数",
		},
		[]string{"reason"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "结算生成订单总数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// ObserveCartOperation 记录一次购物车操作的结果与耗时
// 配合defer使用：errp指向调用方的命名返回值err
func ObserveCartOperation(operation string, start time.Time, errp *error) {
	InitMetrics()

	result := "success"
	if errp != nil && *errp != nil {
		result = "failure"
	}
	CartOperationsTotal.WithLabelValues(operation, result).Inc()
	CartOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncCheckoutRejection 结算被拒绝
func IncCheckoutRejection(reason string) {
	InitMetrics()
	CheckoutRejectionsTotal.WithLabelValues(reason).Inc()
}

// IncOrdersCreated 结算成功
func IncOrdersCreated() {
	InitMetrics()
	OrdersCreatedTotal.Inc()
}

// IncMessagesPublished 消息发布成功
func IncMessagesPublished(exchange, routingKey string) {
	InitMetrics()
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state float64) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// IncCircuitBreakerRequest 熔断器请求计数
func IncCircuitBreakerRequest(name, result string) {
	InitMetrics()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
