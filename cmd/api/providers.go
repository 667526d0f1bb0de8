package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-checkout/internal/application/checkout"
	"github.com/xiebiao/bookstore-checkout/internal/domain/book"
	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/inventory"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/router"
	"github.com/xiebiao/bookstore-checkout/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-checkout/pkg/jwt"
	"github.com/xiebiao/bookstore-checkout/pkg/mq"
)

// provideDB 创建MySQL连接，cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端
func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideCartCache(client *goredis.Client, cfg *config.Config) *redis.CartCache {
	return redis.NewCartCache(client, cfg.Cart.CacheTTL)
}

// provideEventPublisher rabbitmq.enabled=false时返回NoopPublisher
func provideEventPublisher(cfg *config.Config) (checkout.EventPublisher, func(), error) {
	if !cfg.RabbitMQ.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.New("rabbitmq-publisher", circuitbreaker.Config{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	})
	cleanup := func() {
		if err := pub.Close(); err != nil {
			zap.L().Warn("close rabbitmq publisher failed", zap.Error(err))
		}
	}
	return messaging.NewOrderEventPublisher(pub, breaker), cleanup, nil
}

// provideCartEngine 购物车领域服务（数量上限来自配置）
func provideCartEngine(
	cfg *config.Config,
	carts cart.Repository,
	items cart.LineItemRepository,
	books book.Repository,
	stock inventory.Repository,
) *cart.Engine {
	return cart.NewEngine(carts, items, books, stock, cart.WithMaxQuantity(cfg.Cart.MaxQuantity))
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

func provideRouter(
	cfg *config.Config,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	return router.New(cfg.Server.Mode, cartHandler, checkoutHandler, authHandler, authMiddleware)
}
