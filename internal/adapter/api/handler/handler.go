package handler

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/usecase"
)

var (
	catalogHandler           *CatalogHandler
	queueHandler             *QueueHandler
	collectionRequestHandler *CollectionRequestHandler
	ratingHandler            *RatingHandler
	collectorHandler         *CollectorHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	queueUseCase *usecase.QueueUseCase,
	collectionRequestUseCase *usecase.CollectionRequestUseCase,
	ratingUseCase *usecase.RatingUseCase,
	collectorUseCase *usecase.CollectorUseCase,
) {
	catalogHandler = NewCatalogHandler(catalogUseCase)
	queueHandler = NewQueueHandler(queueUseCase)
	collectionRequestHandler = NewCollectionRequestHandler(collectionRequestUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
	collectorHandler = NewCollectorHandler(collectorUseCase, ratingUseCase)
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetQueueHandler() *QueueHandler {
	return queueHandler
}

func GetCollectionRequestHandler() *CollectionRequestHandler {
	return collectionRequestHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}

func GetCollectorHandler() *CollectorHandler {
	return collectorHandler
}

// userID is the identity set by the Identify middleware.
func userID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
