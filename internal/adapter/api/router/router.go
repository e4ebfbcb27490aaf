package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
	"recyclemart/internal/adapter/api/middleware"
)

// Rate limit actions.
const (
	ActionQueueWrite        = "queue_write"
	ActionRequestSubmit     = "request_submit"
	ActionRequestTransition = "request_transition"
	ActionRatingWrite       = "rating_write"
)

func Setup(
	e *echo.Echo,
	identityMiddleware *middleware.IdentityMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e)
	SetupCatalogRouter(e)
	SetupQueueRouter(e, identityMiddleware, rateLimitMiddleware)
	SetupCollectionRequestRouter(e, identityMiddleware, rateLimitMiddleware)
	SetupRatingRouter(e, identityMiddleware, rateLimitMiddleware)
	SetupCollectorRouter(e)
	SetupWebSocketRouter(e, identityMiddleware, wsHandler)
}
