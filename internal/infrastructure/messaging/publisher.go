// Package messaging 领域事件发布
//
// 设计说明：
// 1. 事件在事务提交后发布，发布失败只记日志，不回滚已创建的订单
// 2. 发布经过熔断器：RabbitMQ不可用时快速失败，不拖慢结算接口
// 3. 未启用RabbitMQ时使用NoopPublisher，调用方代码不变
package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	"github.com/xiebiao/bookstore-checkout/pkg/circuitbreaker"
)

// RoutingKeyOrderCreated order.created事件的routing key
const RoutingKeyOrderCreated = "order.created"

const publishTimeout = 3 * time.Second

// Publisher 消息发布（mq.Publisher实现）
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 通过RabbitMQ发布订单事件
type OrderEventPublisher struct {
	pub     Publisher
	breaker *circuitbreaker.CircuitBreaker
}

// NewOrderEventPublisher 创建订单事件发布者
func NewOrderEventPublisher(pub Publisher, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	return &OrderEventPublisher{pub: pub, breaker: breaker}
}

// PublishOrderCreated 发布order.created
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, evt order.CreatedEvent) error {
	// 请求ctx可能在响应写出后被取消，发布使用独立超时
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.pub.Publish(ctx, RoutingKeyOrderCreated, evt)
	})
	if err != nil {
		zap.L().Warn("publish order event failed",
			zap.String("order_no", evt.OrderNo),
			zap.String("breaker", p.breaker.State()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// NoopPublisher 未启用消息队列时使用
type NoopPublisher struct{}

// PublishOrderCreated 只记录debug日志
func (NoopPublisher) PublishOrderCreated(_ context.Context, evt order.CreatedEvent) error {
	zap.L().Debug("order event dropped, rabbitmq disabled", zap.String("order_no", evt.OrderNo))
	return nil
}
