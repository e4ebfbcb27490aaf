package router

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/adapter/api/handler"
)

func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()

	catalog := e.Group("/v1/catalog")
	catalog.GET("", catalogHandler.ListItems)
	catalog.GET("/categories", catalogHandler.ListCategories)
	catalog.GET("/:itemId", catalogHandler.GetItem)
}
