package usecase

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/domain/repository"
	"recyclemart/internal/infrastructure/lock"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

const (
	reasonNotCompleted  = "Collection request is not completed"
	reasonNoCollector   = "Collection request has no collector"
	reasonAlreadyRated  = "Collection request has already been rated"
	reasonMissingRecord = "Collection request not found"
)

// RatingUseCase owns ratings and the collector aggregates derived from them.
// Every rating write and its aggregate recompute land in the same batch.
type RatingUseCase struct {
	store          repository.CollectionStore
	locks          *lock.Keyed
	publisher      EventPublisher
	now            Clock
	maxFeedbackLen int
}

func NewRatingUseCase(
	store repository.CollectionStore,
	locks *lock.Keyed,
	publisher EventPublisher,
	clock Clock,
	maxFeedbackLen int,
) *RatingUseCase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if clock == nil {
		clock = SystemClock
	}
	if maxFeedbackLen <= 0 {
		maxFeedbackLen = entity.DefaultFeedbackMaxLength
	}
	return &RatingUseCase{
		store:          store,
		locks:          locks,
		publisher:      publisher,
		now:            clock,
		maxFeedbackLen: maxFeedbackLen,
	}
}

// CanRate reports whether request may receive a rating given the rating
// already stored for it, if any.
func CanRate(request *entity.CollectionRequest, existing *entity.Rating) entity.RatingEligibility {
	if request == nil {
		return entity.RatingEligibility{Reason: reasonMissingRecord}
	}

	e := entity.RatingEligibility{CollectionRequestID: request.ID}
	switch {
	case request.Status != entity.StatusCompleted:
		e.Reason = reasonNotCompleted
	case request.Collector == nil:
		e.Reason = reasonNoCollector
	case existing != nil:
		e.Reason = reasonAlreadyRated
	default:
		e.CanRate = true
	}
	return e
}

func (uc *RatingUseCase) CanRateRequest(ctx context.Context, requestID string) (entity.RatingEligibility, error) {
	request, err := uc.loadRequest(ctx, requestID)
	if err != nil {
		return entity.RatingEligibility{}, err
	}

	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return entity.RatingEligibility{}, errors.Internal("Failed to load ratings", err)
	}

	return CanRate(request, findRating(ratings, requestID)), nil
}

func (uc *RatingUseCase) SubmitRating(ctx context.Context, requestID string, score int, feedback string) (result *entity.Rating, err error) {
	ctx, span := startSpan(ctx, "Rating.Submit",
		attribute.String("request.id", requestID),
		attribute.Int("rating.score", score))
	defer func() { finishSpan(span, err) }()

	request, err := uc.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Completed requests never change again, so the request read above stays
	// valid once the ratings lock is held.
	unlock := uc.locks.Lock(ratingsLockKey)
	rating, aggregate, err := uc.submit(ctx, request, score, feedback)
	unlock()
	if err != nil {
		return nil, err
	}

	logger.Info("Rating %d submitted for request %s; collector %s now %.1f over %d",
		rating.Score, rating.CollectionRequestID, rating.CollectorID, aggregate.Average, aggregate.Count)
	uc.publish(ctx, entity.EventRatingSubmitted, rating)

	return rating, nil
}

func (uc *RatingUseCase) submit(ctx context.Context, request *entity.CollectionRequest, score int, feedback string) (*entity.Rating, entity.CollectorAggregate, error) {
	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, entity.CollectorAggregate{}, errors.Internal("Failed to load ratings", err)
	}

	if e := CanRate(request, findRating(ratings, request.ID)); !e.CanRate {
		return nil, entity.CollectorAggregate{}, errors.NotRateable(e.Reason)
	}
	if err := uc.validate(score, feedback); err != nil {
		return nil, entity.CollectorAggregate{}, err
	}

	now := uc.now()
	rating := entity.Rating{
		CollectionRequestID: request.ID,
		CollectorID:         request.Collector.ID,
		RequesterID:         request.RequesterID,
		Score:               score,
		Feedback:            feedback,
		CreatedAt:           now,
	}
	ratings = append(ratings, rating)

	aggregate, err := uc.persist(ctx, ratings, rating.CollectorID, now)
	if err != nil {
		return nil, entity.CollectorAggregate{}, err
	}
	return &rating, aggregate, nil
}

// EditRating replaces score and feedback. The creation time and request id
// of the rating are kept.
func (uc *RatingUseCase) EditRating(ctx context.Context, requestID string, score int, feedback string) (result *entity.Rating, err error) {
	ctx, span := startSpan(ctx, "Rating.Edit",
		attribute.String("request.id", requestID),
		attribute.Int("rating.score", score))
	defer func() { finishSpan(span, err) }()

	if err := uc.validate(score, feedback); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(ratingsLockKey)
	rating, err := uc.edit(ctx, requestID, score, feedback)
	unlock()
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, entity.EventRatingEdited, rating)
	return rating, nil
}

func (uc *RatingUseCase) edit(ctx context.Context, requestID string, score int, feedback string) (*entity.Rating, error) {
	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	i := indexOfRating(ratings, requestID)
	if i < 0 {
		return nil, errors.NotFound("Rating", nil)
	}

	now := uc.now()
	edited := now
	ratings[i].Score = score
	ratings[i].Feedback = feedback
	ratings[i].EditedAt = &edited

	if _, err := uc.persist(ctx, ratings, ratings[i].CollectorID, now); err != nil {
		return nil, err
	}

	rating := ratings[i]
	return &rating, nil
}

// RemoveRating deletes the rating of requestID. Removing a missing rating is
// not an error.
func (uc *RatingUseCase) RemoveRating(ctx context.Context, requestID string) (err error) {
	ctx, span := startSpan(ctx, "Rating.Remove", attribute.String("request.id", requestID))
	defer func() { finishSpan(span, err) }()

	unlock := uc.locks.Lock(ratingsLockKey)
	removed, err := uc.remove(ctx, requestID)
	unlock()
	if err != nil {
		return err
	}

	if removed != nil {
		uc.publish(ctx, entity.EventRatingRemoved, removed)
	}
	return nil
}

func (uc *RatingUseCase) remove(ctx context.Context, requestID string) (*entity.Rating, error) {
	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	i := indexOfRating(ratings, requestID)
	if i < 0 {
		return nil, nil
	}

	removed := ratings[i]
	ratings = append(ratings[:i], ratings[i+1:]...)

	if _, err := uc.persist(ctx, ratings, removed.CollectorID, uc.now()); err != nil {
		return nil, err
	}
	return &removed, nil
}

// persist writes ratings together with the recomputed aggregate of
// collectorID. A collector left with no ratings has its aggregate dropped.
func (uc *RatingUseCase) persist(ctx context.Context, ratings []entity.Rating, collectorID string, now time.Time) (entity.CollectorAggregate, error) {
	aggCol := repository.AggregateCollection()
	aggregates, err := aggCol.Load(ctx, uc.store)
	if err != nil {
		return entity.CollectorAggregate{}, errors.Internal("Failed to load collector aggregates", err)
	}

	aggregate := entity.ComputeAggregate(collectorID, ratings, now)

	kept := make([]entity.CollectorAggregate, 0, len(aggregates)+1)
	for _, a := range aggregates {
		if a.CollectorID != collectorID {
			kept = append(kept, a)
		}
	}
	if aggregate.Count > 0 {
		kept = append(kept, aggregate)
	}

	ratingWrite, err := repository.RatingCollection().Write(ratings)
	if err != nil {
		return entity.CollectorAggregate{}, errors.Internal("Failed to encode ratings", err)
	}
	aggWrite, err := aggCol.Write(kept)
	if err != nil {
		return entity.CollectorAggregate{}, errors.Internal("Failed to encode collector aggregates", err)
	}

	if err := uc.store.SaveBatch(ctx, []repository.CollectionWrite{ratingWrite, aggWrite}); err != nil {
		return entity.CollectorAggregate{}, errors.Internal("Failed to save rating", err)
	}
	return aggregate, nil
}

func (uc *RatingUseCase) validate(score int, feedback string) error {
	if !entity.ValidScore(score) {
		return errors.InvalidScore(score, entity.MinScore, entity.MaxScore)
	}
	if utf8.RuneCountInString(feedback) > uc.maxFeedbackLen {
		return errors.InvalidFeedback(uc.maxFeedbackLen)
	}
	return nil
}

func (uc *RatingUseCase) GetRating(ctx context.Context, requestID string) (*entity.Rating, error) {
	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	rating := findRating(ratings, requestID)
	if rating == nil {
		return nil, errors.NotFound("Rating", nil)
	}
	return rating, nil
}

// ListForCollector returns the ratings left for a collector, newest first.
func (uc *RatingUseCase) ListForCollector(ctx context.Context, collectorID string) ([]entity.Rating, error) {
	if strings.TrimSpace(collectorID) == "" {
		return nil, errors.BadRequest("Collector ID is required", nil)
	}

	ratings, err := repository.RatingCollection().Load(ctx, uc.store)
	if err != nil {
		return nil, errors.Internal("Failed to load ratings", err)
	}

	out := make([]entity.Rating, 0)
	for _, r := range ratings {
		if r.CollectorID == collectorID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (uc *RatingUseCase) loadRequest(ctx context.Context, requestID string) (*entity.CollectionRequest, error) {
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

func (uc *RatingUseCase) publish(ctx context.Context, eventType entity.EventType, r *entity.Rating) {
	occurred := r.CreatedAt
	if r.EditedAt != nil {
		occurred = *r.EditedAt
	}
	if eventType == entity.EventRatingRemoved {
		occurred = uc.now()
	}

	uc.publisher.Publish(ctx, entity.Event{
		Type:                eventType,
		CollectionRequestID: r.CollectionRequestID,
		RequesterID:         r.RequesterID,
		CollectorID:         r.CollectorID,
		Score:               r.Score,
		OccurredAt:          occurred,
	})
}

func findRating(ratings []entity.Rating, requestID string) *entity.Rating {
	if i := indexOfRating(ratings, requestID); i >= 0 {
		r := ratings[i]
		return &r
	}
	return nil
}

func indexOfRating(ratings []entity.Rating, requestID string) int {
	for i := range ratings {
		if ratings[i].CollectionRequestID == requestID {
			return i
		}
	}
	return -1
}
