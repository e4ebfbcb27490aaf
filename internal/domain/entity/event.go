package entity

import (
	"time"
)

type EventType string

const (
	EventRequestSubmitted     EventType = "request_submitted"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRatingSubmitted      EventType = "rating_submitted"
	EventRatingEdited         EventType = "rating_edited"
	EventRatingRemoved        EventType = "rating_removed"
)

// Event is emitted after a state change has been persisted. Presentation
// layers decide how, or whether, to show it.
type Event struct {
	Type                EventType     `json:"type"`
	CollectionRequestID string        `json:"collection_request_id"`
	RequesterID         string        `json:"requester_id,omitempty"`
	CollectorID         string        `json:"collector_id,omitempty"`
	Status              RequestStatus `json:"status,omitempty"`
	Message             string        `json:"message,omitempty"`
	Score               int           `json:"score,omitempty"`
	OccurredAt          time.Time     `json:"occurred_at"`
}

// Recipients lists the users an event concerns, without duplicates.
func (e Event) Recipients() []string {
	var out []string
	if e.RequesterID != "" {
		out = append(out, e.RequesterID)
	}
	if e.CollectorID != "" && e.CollectorID != e.RequesterID {
		out = append(out, e.CollectorID)
	}
	return out
}
