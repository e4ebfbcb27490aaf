package handler

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/usecase"
	"recyclemart/pkg/response"
)

type CollectorHandler struct {
	collectorUseCase *usecase.CollectorUseCase
	ratingUseCase    *usecase.RatingUseCase
}

func NewCollectorHandler(collectorUseCase *usecase.CollectorUseCase, ratingUseCase *usecase.RatingUseCase) *CollectorHandler {
	return &CollectorHandler{
		collectorUseCase: collectorUseCase,
		ratingUseCase:    ratingUseCase,
	}
}

func (h *CollectorHandler) GetAggregate(c echo.Context) error {
	aggregate, err := h.collectorUseCase.GetAggregate(c.Request().Context(), c.Param("collectorId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, aggregate)
}

func (h *CollectorHandler) ListRatings(c echo.Context) error {
	ratings, err := h.ratingUseCase.ListForCollector(c.Request().Context(), c.Param("collectorId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ratings)
}
