package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
	"recyclemart/internal/adapter/api/middleware"
)

func SetupQueueRouter(e *echo.Echo, identityMiddleware *middleware.IdentityMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	queueHandler := handler.GetQueueHandler()
	limit := rateLimitMiddleware.Limit(ActionQueueWrite)

	queue := e.Group("/v1/queue")
	queue.Use(identityMiddleware.Identify)

	queue.GET("", queueHandler.GetQueue)
	queue.POST("/items", queueHandler.AddItem, limit)
	queue.POST("/custom-items", queueHandler.AddCustomItem, limit)
	queue.PATCH("/items/:itemId", queueHandler.UpdateQuantity, limit)
	queue.DELETE("/items/:itemId", queueHandler.RemoveItem, limit)
}
