package handler

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/usecase"
	"recyclemart/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

// Score is a pointer so an explicit 0 passes required and is reported by the
// use case as INVALID_SCORE.
type ratingRequest struct {
	Score    *int   `json:"score" validate:"required"`
	Feedback string `json:"feedback"`
}

func (h *RatingHandler) GetRating(c echo.Context) error {
	rating, err := h.ratingUseCase.GetRating(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rating)
}

func (h *RatingHandler) GetEligibility(c echo.Context) error {
	eligibility, err := h.ratingUseCase.CanRateRequest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, eligibility)
}

func (h *RatingHandler) SubmitRating(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	rating, err := h.ratingUseCase.SubmitRating(c.Request().Context(), c.Param("id"), *req.Score, req.Feedback)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, rating)
}

func (h *RatingHandler) EditRating(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	rating, err := h.ratingUseCase.EditRating(c.Request().Context(), c.Param("id"), *req.Score, req.Feedback)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rating)
}

func (h *RatingHandler) RemoveRating(c echo.Context) error {
	if err := h.ratingUseCase.RemoveRating(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Rating removed",
	})
}
