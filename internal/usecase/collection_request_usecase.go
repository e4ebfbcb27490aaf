package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/domain/repository"
	"recyclemart/internal/infrastructure/lock"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
	"recyclemart/pkg/utils"
)

const DefaultCollectionLeadTime = 24 * time.Hour

type CollectionRequestUseCase struct {
	store     repository.CollectionStore
	locks     *lock.Keyed
	publisher EventPublisher
	now       Clock
	leadTime  time.Duration
	newID     func() (string, error)
}

func NewCollectionRequestUseCase(
	store repository.CollectionStore,
	locks *lock.Keyed,
	publisher EventPublisher,
	clock Clock,
	leadTime time.Duration,
) *CollectionRequestUseCase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if clock == nil {
		clock = SystemClock
	}
	if leadTime <= 0 {
		leadTime = DefaultCollectionLeadTime
	}
	return &CollectionRequestUseCase{
		store:     store,
		locks:     locks,
		publisher: publisher,
		now:       clock,
		leadTime:  leadTime,
		newID:     newRequestID,
	}
}

// newRequestID returns a UUIDv7, which sorts by creation time.
func newRequestID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CollectorInput identifies the collector accepting a request.
type CollectorInput struct {
	ID    string
	Name  string
	Phone string
}

// Submit turns the user's queue into a pending collection request. The new
// request and the emptied queue are written in one batch.
func (uc *CollectionRequestUseCase) Submit(ctx context.Context, userID string, requester entity.RequesterInfo) (result *entity.CollectionRequest, err error) {
	ctx, span := startSpan(ctx, "CollectionRequest.Submit", attribute.String("user.id", userID))
	defer func() { finishSpan(span, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	request, err := uc.submit(ctx, userID, requester)
	if err != nil {
		return nil, err
	}

	logger.Info("Collection request %s submitted by %s (%d items, total %.2f)",
		request.ID, userID, len(request.Items), request.TotalValue)

	uc.publisher.Publish(ctx, entity.Event{
		Type:                entity.EventRequestSubmitted,
		CollectionRequestID: request.ID,
		RequesterID:         request.RequesterID,
		Status:              request.Status,
		Message:             request.History[len(request.History)-1].Message,
		OccurredAt:          request.CreatedAt,
	})

	return request.Clone(), nil
}

func (uc *CollectionRequestUseCase) submit(ctx context.Context, userID string, requester entity.RequesterInfo) (*entity.CollectionRequest, error) {
	unlockQueue := uc.locks.Lock(queueLockKey(userID))
	defer unlockQueue()

	queueCol := repository.QueueCollection(userID)
	entries, err := queueCol.Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load queue", err)
	}
	if len(entries) == 0 {
		return nil, errors.EmptyQueue()
	}
	if missing := missingProfileFields(requester); missing != "" {
		return nil, errors.IncompleteProfile(missing)
	}

	id, err := uc.newID()
	if err != nil {
		return nil, errors.Internal("Failed to generate request ID", err)
	}
	request := entity.NewCollectionRequest(id, userID, entries, requester, uc.now())

	unlockRequests := uc.locks.Lock(requestsLockKey)
	defer unlockRequests()

	requestCol := repository.RequestCollection()
	requests, err := requestCol.Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load collection requests", err)
	}
	requests = append(requests, *request)

	requestWrite, err := requestCol.Write(requests)
	if err != nil {
		return nil, errors.Internal("Failed to encode collection requests", err)
	}
	queueWrite, err := queueCol.Write(nil)
	if err != nil {
		return nil, errors.Internal("Failed to encode queue", err)
	}

	if err := uc.store.SaveBatch(ctx, []repository.CollectionWrite{requestWrite, queueWrite}); err != nil {
		return nil, errors.Internal("Failed to save collection request", err)
	}

	return request, nil
}

func missingProfileFields(r entity.RequesterInfo) string {
	var missing []string
	if strings.TrimSpace(r.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(r.Phone) == "" {
		missing = append(missing, "phone")
	}
	return strings.Join(missing, " and ")
}

// Accept assigns the collector to a pending request. The collector's current
// aggregate rating is copied into the request.
func (uc *CollectionRequestUseCase) Accept(ctx context.Context, requestID string, collector CollectorInput) (result *entity.CollectionRequest, err error) {
	ctx, span := startSpan(ctx, "CollectionRequest.Accept",
		attribute.String("request.id", requestID),
		attribute.String("collector.id", collector.ID))
	defer func() { finishSpan(span, err) }()

	if strings.TrimSpace(collector.ID) == "" {
		return nil, errors.BadRequest("Collector ID is required", nil)
	}

	rating, err := uc.collectorRating(ctx, collector.ID)
	if err != nil {
		return nil, err
	}

	return uc.transition(ctx, requestID, entity.StatusAccepted, func(r *entity.CollectionRequest, now time.Time) string {
		r.Collector = &entity.CollectorInfo{
			ID:     collector.ID,
			Name:   collector.Name,
			Phone:  collector.Phone,
			Rating: rating,
		}
		eta := now.Add(uc.leadTime)
		r.EstimatedCollectionAt = &eta

		name := strings.TrimSpace(collector.Name)
		if name == "" {
			name = collector.ID
		}
		return "Request accepted by " + name
	})
}

// Reject closes a pending request. A non-empty reason is kept in the history.
func (uc *CollectionRequestUseCase) Reject(ctx context.Context, requestID, reason string) (result *entity.CollectionRequest, err error) {
	ctx, span := startSpan(ctx, "CollectionRequest.Reject", attribute.String("request.id", requestID))
	defer func() { finishSpan(span, err) }()

	return uc.transition(ctx, requestID, entity.StatusRejected, func(*entity.CollectionRequest, time.Time) string {
		if reason = strings.TrimSpace(reason); reason != "" {
			return "Request rejected: " + reason
		}
		return "Request rejected"
	})
}

func (uc *CollectionRequestUseCase) StartProgress(ctx context.Context, requestID string) (result *entity.CollectionRequest, err error) {
	ctx, span := startSpan(ctx, "CollectionRequest.StartProgress", attribute.String("request.id", requestID))
	defer func() { finishSpan(span, err) }()

	return uc.transition(ctx, requestID, entity.StatusInProgress, func(*entity.CollectionRequest, time.Time) string {
		return "Collection in progress"
	})
}

// Complete finishes an in-progress request and stamps the collection time.
// Completed requests become eligible for rating.
func (uc *CollectionRequestUseCase) Complete(ctx context.Context, requestID string) (result *entity.CollectionRequest, err error) {
	ctx, span := startSpan(ctx, "CollectionRequest.Complete", attribute.String("request.id", requestID))
	defer func() { finishSpan(span, err) }()

	return uc.transition(ctx, requestID, entity.StatusCompleted, func(r *entity.CollectionRequest, now time.Time) string {
		collected := now
		r.CollectedAt = &collected
		return "Collection completed"
	})
}

// transition applies one legal status move under the requests lock. apply
// fills in status-specific fields and returns the history message; it only
// runs once the move is known to be legal.
func (uc *CollectionRequestUseCase) transition(
	ctx context.Context,
	requestID string,
	next entity.RequestStatus,
	apply func(r *entity.CollectionRequest, now time.Time) string,
) (*entity.CollectionRequest, error) {
	updated, err := uc.applyTransition(ctx, requestID, next, apply)
	if err != nil {
		return nil, err
	}

	change := updated.History[len(updated.History)-1]
	logger.Info("Collection request %s moved to %s", updated.ID, updated.Status)

	event := entity.Event{
		Type:                entity.EventRequestStatusChanged,
		CollectionRequestID: updated.ID,
		RequesterID:         updated.RequesterID,
		Status:              updated.Status,
		Message:             change.Message,
		OccurredAt:          change.ChangedAt,
	}
	if updated.Collector != nil {
		event.CollectorID = updated.Collector.ID
	}
	uc.publisher.Publish(ctx, event)

	return updated, nil
}

func (uc *CollectionRequestUseCase) applyTransition(
	ctx context.Context,
	requestID string,
	next entity.RequestStatus,
	apply func(r *entity.CollectionRequest, now time.Time) string,
) (*entity.CollectionRequest, error) {
	unlock := uc.locks.Lock(requestsLockKey)
	defer unlock()

	col := repository.RequestCollection()
	requests, err := col.Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load collection requests", err)
	}

	i := indexOfRequest(requests, requestID)
	if i < 0 {
		return nil, errors.NotFound("Collection request", nil)
	}

	current := requests[i].Status
	if !current.CanTransitionTo(next) {
		return nil, errors.InvalidTransition(string(current), string(next))
	}

	updated := requests[i].Clone()
	now := uc.now()
	message := apply(updated, now)
	updated.Transition(next, message, now)
	requests[i] = *updated

	if err := col.Save(ctx, uc.store, requests); err != nil {
		return nil, errors.Internal("Failed to save collection request", err)
	}

	return updated.Clone(), nil
}

func (uc *CollectionRequestUseCase) collectorRating(ctx context.Context, collectorID string) (float64, error) {
	aggregates, err := repository.AggregateCollection().Load(ctx, uc.store)
	if err != nil {
		return 0, errors.Internal("Failed to load collector ratings", err)
	}
	for _, a := range aggregates {
		if a.CollectorID == collectorID {
			return a.Average, nil
		}
	}
	return 0, nil
}

func (uc *CollectionRequestUseCase) Get(ctx context.Context, requestID string) (*entity.CollectionRequest, error) {
	requests, err := repository.RequestCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load collection requests", err)
	}

	i := indexOfRequest(requests, requestID)
	if i < 0 {
		return nil, errors.NotFound("Collection request", nil)
	}
	return &requests[i], nil
}

// ListForRequester returns the user's requests, newest first. An empty status
// matches every status.
func (uc *CollectionRequestUseCase) ListForRequester(ctx context.Context, userID string, status entity.RequestStatus, p utils.PaginationParams) ([]entity.CollectionRequest, int64, error) {
	return uc.list(ctx, status, p, func(r entity.CollectionRequest) bool {
		return r.RequesterID == userID
	})
}

// ListForCollector returns the requests the collector has accepted, newest first.
func (uc *CollectionRequestUseCase) ListForCollector(ctx context.Context, collectorID string, status entity.RequestStatus, p utils.PaginationParams) ([]entity.CollectionRequest, int64, error) {
	return uc.list(ctx, status, p, func(r entity.CollectionRequest) bool {
		return r.Collector != nil && r.Collector.ID == collectorID
	})
}

func (uc *CollectionRequestUseCase) ListByStatus(ctx context.Context, status entity.RequestStatus, p utils.PaginationParams) ([]entity.CollectionRequest, int64, error) {
	return uc.list(ctx, status, p, func(entity.CollectionRequest) bool { return true })
}

func (uc *CollectionRequestUseCase) list(
	ctx context.Context,
	status entity.RequestStatus,
	p utils.PaginationParams,
	match func(entity.CollectionRequest) bool,
) ([]entity.CollectionRequest, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, errors.BadRequest("Unknown request status "+string(status), nil)
	}

	requests, err := repository.RequestCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, 0, errors.Internal("Failed to load collection requests", err)
	}

	filtered := make([]entity.CollectionRequest, 0, len(requests))
	for _, r := range requests {
		if status != "" && r.Status != status {
			continue
		}
		if match(r) {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	page, total := utils.Paginate(filtered, p)
	return page, total, nil
}

func indexOfRequest(requests []entity.CollectionRequest, id string) int {
	for i := range requests {
		if requests[i].ID == id {
			return i
		}
	}
	return -1
}
