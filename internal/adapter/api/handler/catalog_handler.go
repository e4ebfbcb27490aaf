package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/usecase"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

type catalogItemResponse struct {
	entity.CatalogItem
	Unit entity.QuantityUnit `json:"unit"`
}

func toCatalogItemResponses(items []entity.CatalogItem) []catalogItemResponse {
	out := make([]catalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, catalogItemResponse{CatalogItem: item, Unit: item.Unit()})
	}
	return out
}

// ListItems lists the whole catalog, or one category with ?category=.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		return response.Success(c, toCatalogItemResponses(h.catalogUseCase.ListAll()))
	}

	parsed, ok := entity.ParseCategory(category)
	if !ok {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("Unknown category %q", category), nil))
	}
	return response.Success(c, toCatalogItemResponses(h.catalogUseCase.ListByCategory(parsed)))
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.Categories())
}

func (h *CatalogHandler) GetItem(c echo.Context) error {
	item, err := h.catalogUseCase.Get(c.Param("itemId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, catalogItemResponse{CatalogItem: item, Unit: item.Unit()})
}
