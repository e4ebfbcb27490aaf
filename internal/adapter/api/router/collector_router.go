package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
)

// SetupCollectorRouter serves public collector reputation.
func SetupCollectorRouter(e *echo.Echo) {
	collectorHandler := handler.GetCollectorHandler()

	collectors := e.Group("/v1/collectors")
	collectors.GET("/:collectorId/rating", collectorHandler.GetAggregate)
	collectors.GET("/:collectorId/ratings", collectorHandler.ListRatings)
}
