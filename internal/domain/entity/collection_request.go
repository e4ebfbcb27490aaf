package entity

import (
	"strings"
	"time"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusAccepted   RequestStatus = "accepted"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusRejected   RequestStatus = "rejected"
)

// transitions is the complete legal graph. Statuses absent as keys are terminal.
var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:    {StatusAccepted, StatusRejected},
	StatusAccepted:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

var allStatuses = []RequestStatus{
	StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusRejected,
}

func RequestStatuses() []RequestStatus {
	out := make([]RequestStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseRequestStatus(s string) (RequestStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	for _, st := range allStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s RequestStatus) Valid() bool {
	for _, st := range allStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RequestStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// RequesterInfo is the contact snapshot taken from the requester's profile.
type RequesterInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Complete checks presence only; formats are the profile owner's concern.
func (r RequesterInfo) Complete() bool {
	return strings.TrimSpace(r.Address) != "" && strings.TrimSpace(r.Phone) != ""
}

type CollectorInfo struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Rating float64 `json:"rating"`
}

type StatusChange struct {
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	ChangedAt time.Time     `json:"changed_at"`
}

type CollectionRequest struct {
	ID                    string         `json:"id"`
	RequesterID           string         `json:"requester_id"`
	Items                 []QueueEntry   `json:"items"`
	TotalValue            float64        `json:"total_value"`
	Requester             RequesterInfo  `json:"requester"`
	Status                RequestStatus  `json:"status"`
	History               []StatusChange `json:"history"`
	Collector             *CollectorInfo `json:"collector,omitempty"`
	EstimatedCollectionAt *time.Time     `json:"estimated_collection_at,omitempty"`
	CollectedAt           *time.Time     `json:"collected_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// NewCollectionRequest snapshots entries into a pending request with its
// first history record.
func NewCollectionRequest(id, requesterID string, entries []QueueEntry, requester RequesterInfo, now time.Time) *CollectionRequest {
	items := CloneEntries(entries)
	return &CollectionRequest{
		ID:          id,
		RequesterID: requesterID,
		Items:       items,
		TotalValue:  TotalValue(items),
		Requester:   requester,
		Status:      StatusPending,
		History: []StatusChange{{
			Status:    StatusPending,
			Message:   "Collection request submitted",
			ChangedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition moves the request to next and appends history. It returns false
// and leaves the request untouched when the move is not in the legal graph.
func (r *CollectionRequest) Transition(next RequestStatus, message string, at time.Time) bool {
	if !r.Status.CanTransitionTo(next) {
		return false
	}
	r.Status = next
	r.History = append(r.History, StatusChange{Status: next, Message: message, ChangedAt: at})
	r.UpdatedAt = at
	return true
}

// Clone deep-copies the request so callers never share slices or pointers
// with stored state.
func (r *CollectionRequest) Clone() *CollectionRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = CloneEntries(r.Items)
	c.History = make([]StatusChange, len(r.History))
	copy(c.History, r.History)
	if r.Collector != nil {
		collector := *r.Collector
		c.Collector = &collector
	}
	if r.EstimatedCollectionAt != nil {
		t := *r.EstimatedCollectionAt
		c.EstimatedCollectionAt = &t
	}
	if r.CollectedAt != nil {
		t := *r.CollectedAt
		c.CollectedAt = &t
	}
	return &c
}
