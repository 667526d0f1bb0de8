//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
// 依赖链：Repository ← Engine ← Service/UseCase ← Handler ← gin.Engine
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcart "github.com/xiebiao/bookstore-checkout/internal/application/cart"
	"github.com/xiebiao/bookstore-checkout/internal/application/checkout"
	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
)

// infrastructureSet 基础设施：数据库、Redis、消息
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideCartCache,
	redis.NewTokenBlacklist,
	provideEventPublisher,
	mysql.NewTxManager,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewCartRepository,
	mysql.NewLineItemRepository,
	mysql.NewBookRepository,
	mysql.NewInventoryRepository,
	mysql.NewCustomerRepository,
	mysql.NewOrderRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideCartEngine,
)

// applicationSet 应用层（接口绑定到具体实现）
var applicationSet = wire.NewSet(
	appcart.NewService,
	checkout.NewUseCase,
	wire.Bind(new(appcart.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(checkout.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appcart.Engine), new(*cart.Engine)),
	wire.Bind(new(checkout.CartEngine), new(*cart.Engine)),
	wire.Bind(new(appcart.Lister), new(cart.Repository)),
	wire.Bind(new(appcart.OrderLookup), new(order.Repository)),
	wire.Bind(new(appcart.Cache), new(*redis.CartCache)),
	wire.Bind(new(checkout.CacheInvalidator), new(*redis.CartCache)),
)

// interfaceSet HTTP层
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewCartHandler,
	handler.NewCheckoutHandler,
	handler.NewAuthHandler,
	provideRouter,
	wire.Bind(new(middleware.Blacklist), new(*redis.TokenBlacklist)),
	wire.Bind(new(handler.TokenRevoker), new(*redis.TokenBlacklist)),
	wire.Bind(new(handler.CartService), new(*appcart.Service)),
	wire.Bind(new(handler.CheckoutService), new(*checkout.UseCase)),
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭RabbitMQ、Redis、MySQL
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
