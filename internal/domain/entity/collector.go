package entity

import (
	"sort"
	"time"
)

// RatingRef is one contribution to a collector's aggregate.
type RatingRef struct {
	CollectionRequestID string `json:"collection_request_id"`
	Score               int    `json:"score"`
}

// CollectorAggregate is derived from the ratings that reference a collector
// and is never edited directly.
type CollectorAggregate struct {
	CollectorID string      `json:"collector_id"`
	Ratings     []RatingRef `json:"ratings"`
	Average     float64     `json:"average"`
	Count       int         `json:"count"`
	// UpdatedAt is the time of the last recompute, not of a rating.
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ComputeAggregate rebuilds the aggregate for collectorID from the full rating
// set. Contributions are ordered by creation time, then request id.
func ComputeAggregate(collectorID string, ratings []Rating, now time.Time) CollectorAggregate {
	mine := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.CollectorID == collectorID {
			mine = append(mine, r)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.Before(mine[j].CreatedAt)
		}
		return mine[i].CollectionRequestID < mine[j].CollectionRequestID
	})

	agg := CollectorAggregate{
		CollectorID: collectorID,
		Ratings:     make([]RatingRef, 0, len(mine)),
		Count:       len(mine),
		UpdatedAt:   now,
	}
	sum := 0
	for _, r := range mine {
		agg.Ratings = append(agg.Ratings, RatingRef{CollectionRequestID: r.CollectionRequestID, Score: r.Score})
		sum += r.Score
	}
	if agg.Count > 0 {
		agg.Average = Round1(float64(sum) / float64(agg.Count))
	}
	return agg
}

// EmptyAggregate is what an unrated collector reports.
func EmptyAggregate(collectorID string) CollectorAggregate {
	return CollectorAggregate{CollectorID: collectorID, Ratings: []RatingRef{}}
}
