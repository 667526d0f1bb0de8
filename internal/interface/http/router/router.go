// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookstore-checkout/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-checkout/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-checkout/pkg/response"
)

// New 创建Gin引擎并注册全部路由
// 中间件顺序：Logger（生成request_id）→ Recovery → Metrics → 认证
func New(
	mode string,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery(), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.POST("/auth/logout", authHandler.Logout)

		carts := v1.Group("/carts")
		{
			carts.POST("", cartHandler.CreateCart)
			carts.GET("", cartHandler.ListCarts)
			carts.GET("/:id", cartHandler.GetCart)
			carts.PATCH("/:id", cartHandler.UpdateCart)
			carts.DELETE("/:id", cartHandler.DeleteCart)
			carts.POST("/:id/line-items", cartHandler.AddLineItem)
			carts.DELETE("/:id/line-items/:itemId", cartHandler.RemoveLineItem)
			carts.POST("/:id/checkout", checkoutHandler.Checkout)
		}
	}

	return r
}
