package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
	"recyclemart/internal/adapter/api/middleware"
)

func SetupCollectionRequestRouter(e *echo.Echo, identityMiddleware *middleware.IdentityMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	requestHandler := handler.GetCollectionRequestHandler()

	// Requester routes
	requests := e.Group("/v1/requests")
	requests.Use(identityMiddleware.Identify)

	requests.POST("", requestHandler.Submit, rateLimitMiddleware.Limit(ActionRequestSubmit))
	requests.GET("", requestHandler.ListMine)
	requests.GET("/:id", requestHandler.GetRequest)

	// Collector routes
	collector := e.Group("/v1/collector/requests")
	collector.Use(identityMiddleware.Identify)
	collector.Use(identityMiddleware.CollectorOnly)

	transition := rateLimitMiddleware.Limit(ActionRequestTransition)
	collector.GET("", requestHandler.ListInbox)
	collector.GET("/mine", requestHandler.ListAssigned)
	collector.POST("/:id/accept", requestHandler.Accept, transition)
	collector.POST("/:id/reject", requestHandler.Reject, transition)
	collector.POST("/:id/start", requestHandler.StartProgress, transition)
	collector.POST("/:id/complete", requestHandler.Complete, transition)
}
