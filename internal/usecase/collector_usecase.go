package usecase

import (
	"context"
	"strings"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/domain/repository"
	"recyclemart/pkg/errors"
)

type CollectorUseCase struct {
	store repository.CollectionStore
}

func NewCollectorUseCase(store repository.CollectionStore) *CollectorUseCase {
	return &CollectorUseCase{store: store}
}

// GetAggregate returns the stored aggregate, or an empty one for a collector
// nobody has rated.
func (uc *CollectorUseCase) GetAggregate(ctx context.Context, collectorID string) (entity.CollectorAggregate, error) {
	if strings.TrimSpace(collectorID) == "" {
		return entity.CollectorAggregate{}, errors.BadRequest("Collector ID is required", nil)
	}

	aggregates, err := repository.AggregateCollection().Load(ctx, uc.store)
	if err != nil {
		return entity.CollectorAggregate{}, errors.Internal("Failed to load collector aggregates", err)
	}

	for _, a := range aggregates {
		if a.CollectorID == collectorID {
			return a, nil
		}
	}
	return entity.EmptyAggregate(collectorID), nil
}
