package entity

import (
	"time"
)

const (
	MinScore = 1
	MaxScore = 5

	DefaultFeedbackMaxLength = 500
)

// Rating is the single score a requester leaves for the collector of one
// completed request. CollectionRequestID is the key.
type Rating struct {
	CollectionRequestID string     `json:"collection_request_id"`
	CollectorID         string     `json:"collector_id"`
	RequesterID         string     `json:"requester_id"`
	Score               int        `json:"score"`
	Feedback            string     `json:"feedback,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	EditedAt            *time.Time `json:"edited_at,omitempty"`
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingEligibility explains the outcome of a can-rate check.
type RatingEligibility struct {
	CollectionRequestID string `json:"collection_request_id"`
	CanRate             bool   `json:"can_rate"`
	Reason              string `json:"reason,omitempty"`
}
