package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
	"recyclemart/internal/adapter/api/middleware"
)

func SetupRatingRouter(e *echo.Echo, identityMiddleware *middleware.IdentityMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	ratingHandler := handler.GetRatingHandler()
	limit := rateLimitMiddleware.Limit(ActionRatingWrite)

	rating := e.Group("/v1/requests/:id/rating")
	rating.Use(identityMiddleware.Identify)

	rating.GET("", ratingHandler.GetRating)
	rating.GET("/eligibility", ratingHandler.GetEligibility)
	rating.POST("", ratingHandler.SubmitRating, limit)
	rating.PUT("", ratingHandler.EditRating, limit)
	rating.DELETE("", ratingHandler.RemoveRating, limit)
}
