package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/domain/repository"
	"recyclemart/internal/infrastructure/lock"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

const (
	requestsLockKey = "collection_requests"
	ratingsLockKey  = "ratings"
)

func queueLockKey(userID string) string {
	return "queue:" + userID
}

type QueueUseCase struct {
	store   repository.CollectionStore
	catalog *CatalogUseCase
	locks   *lock.Keyed
	now     Clock
}

func NewQueueUseCase(
	store repository.CollectionStore,
	catalog *CatalogUseCase,
	locks *lock.Keyed,
	clock Clock,
) *QueueUseCase {
	if clock == nil {
		clock = SystemClock
	}
	return &QueueUseCase{
		store:   store,
		catalog: catalog,
		locks:   locks,
		now:     clock,
	}
}

// AddResult reports an add. Duplicate is true when the item was already
// queued; the queue is then unchanged and Entry is the existing entry.
type AddResult struct {
	Entry     entity.QueueEntry `json:"entry"`
	Duplicate bool              `json:"duplicate"`
	Queue     entity.QueueView  `json:"queue"`
}

type CustomItemInput struct {
	Name      string
	Category  string
	UnitPrice float64
}

func (uc *QueueUseCase) GetQueue(ctx context.Context, userID string) (entity.QueueView, error) {
	if err := requireUser(userID); err != nil {
		return entity.QueueView{}, err
	}

	entries, err := repository.QueueCollection(userID).Load(ctx, uc.store)
	if err != nil {
		return entity.QueueView{}, errors.Internal("Failed to load queue", err)
	}
	return entity.NewQueueView(userID, entries), nil
}

func (uc *QueueUseCase) AddItem(ctx context.Context, userID, itemID string) (*AddResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	item, err := uc.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}

	return uc.add(ctx, userID, item, false)
}

// AddCustomItem queues a user-authored item that is not in the catalog.
func (uc *QueueUseCase) AddCustomItem(ctx context.Context, userID string, input CustomItemInput) (*AddResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	id := entity.CustomItemID(name)
	if id == entity.CustomItemPrefix {
		return nil, errors.BadRequest("Custom item name must contain letters or digits", nil)
	}
	if !(input.UnitPrice >= 0) || math.IsInf(input.UnitPrice, 0) {
		return nil, errors.BadRequest("Unit price must be a finite, non-negative number", nil)
	}

	category := entity.CategoryOthers
	if input.Category != "" {
		c, ok := entity.ParseCategory(input.Category)
		if !ok {
			return nil, errors.BadRequest(fmt.Sprintf("Unknown category %q", input.Category), nil)
		}
		category = c
	}

	item := entity.CatalogItem{
		ID:        id,
		Name:      name,
		Category:  category,
		UnitPrice: input.UnitPrice,
	}
	return uc.add(ctx, userID, item, true)
}

func (uc *QueueUseCase) add(ctx context.Context, userID string, item entity.CatalogItem, custom bool) (*AddResult, error) {
	unlock := uc.locks.Lock(queueLockKey(userID))
	defer unlock()

	col := repository.QueueCollection(userID)
	entries, err := col.Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load queue", err)
	}

	if i := entity.IndexOf(entries, item.ID); i >= 0 {
		return &AddResult{
			Entry:     entries[i],
			Duplicate: true,
			Queue:     entity.NewQueueView(userID, entries),
		}, nil
	}

	entry := entity.NewQueueEntry(item, custom, uc.now())
	entries = append(entries, entry)
	if !finiteTotal(entries) {
		return nil, errors.BadRequest("Unit price is too large", nil)
	}

	if err := col.Save(ctx, uc.store, entries); err != nil {
		return nil, errors.Internal("Failed to save queue", err)
	}

	logger.Debug("Queue %s: added %s", userID, item.ID)
	return &AddResult{
		Entry: entry,
		Queue: entity.NewQueueView(userID, entries),
	}, nil
}

// RemoveItem drops the entry for itemID. Removing an absent item is not an error.
func (uc *QueueUseCase) RemoveItem(ctx context.Context, userID, itemID string) (entity.QueueView, error) {
	if err := requireUser(userID); err != nil {
		return entity.QueueView{}, err
	}

	unlock := uc.locks.Lock(queueLockKey(userID))
	defer unlock()

	col := repository.QueueCollection(userID)
	entries, err := col.Load(ctx, uc.store)
	if err != nil {
		return entity.QueueView{}, errors.Internal("Failed to load queue", err)
	}

	i := entity.IndexOf(entries, itemID)
	if i < 0 {
		return entity.NewQueueView(userID, entries), nil
	}

	entries = append(entries[:i], entries[i+1:]...)
	if err := col.Save(ctx, uc.store, entries); err != nil {
		return entity.QueueView{}, errors.Internal("Failed to save queue", err)
	}

	return entity.NewQueueView(userID, entries), nil
}

// UpdateQuantity sets a new quantity and recomputes the entry value. Quantities
// the entry's unit does not accept are rejected without touching the queue.
func (uc *QueueUseCase) UpdateQuantity(ctx context.Context, userID, itemID string, quantity float64) (*entity.QueueEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(queueLockKey(userID))
	defer unlock()

	col := repository.QueueCollection(userID)
	entries, err := col.Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load queue", err)
	}

	i := entity.IndexOf(entries, itemID)
	if i < 0 {
		return nil, errors.NotFound("Queue entry", nil)
	}

	unit := entries[i].Unit
	if !unit.Accepts(quantity) {
		return nil, invalidQuantity(unit, quantity)
	}

	entries[i] = entries[i].WithQuantity(quantity)
	if !finiteTotal(entries) {
		return nil, errors.InvalidQuantity(fmt.Sprintf("Quantity %v puts the queue value out of range", quantity))
	}
	if err := col.Save(ctx, uc.store, entries); err != nil {
		return nil, errors.Internal("Failed to save queue", err)
	}

	updated := entries[i]
	return &updated, nil
}

func invalidQuantity(unit entity.QuantityUnit, quantity float64) *errors.AppError {
	if unit.Kind == entity.UnitPieces {
		return errors.InvalidQuantity(fmt.Sprintf("Quantity %v must be a whole number of at least %v pieces", quantity, unit.Minimum))
	}
	return errors.InvalidQuantity(fmt.Sprintf("Quantity %v must be at least %v %s", quantity, unit.Minimum, unit.Kind))
}

// finiteTotal reports whether every entry value and the queue total are
// representable. Values that overflow cannot be persisted.
func finiteTotal(entries []entity.QueueEntry) bool {
	for _, e := range entries {
		if math.IsInf(e.EstimatedValue, 0) || math.IsNaN(e.EstimatedValue) {
			return false
		}
	}
	total := entity.TotalValue(entries)
	return !math.IsInf(total, 0) && !math.IsNaN(total)
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.BadRequest("User ID is required", nil)
	}
	return nil
}
