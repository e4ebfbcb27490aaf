package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	legal := map[RequestStatus][]RequestStatus{
		StatusPending:    {StatusAccepted, StatusRejected},
		StatusAccepted:   {StatusInProgress},
		StatusInProgress: {StatusCompleted},
	}

	for _, from := range RequestStatuses() {
		for _, to := range RequestStatuses() {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, RequestStatus("shipped").CanTransitionTo(StatusCompleted))
}

func TestParseRequestStatus(t *testing.T) {
	s, ok := ParseRequestStatus("In Progress")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, s)

	s, ok = ParseRequestStatus("in-progress")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, s)

	_, ok = ParseRequestStatus("done")
	assert.False(t, ok)
}

func TestRequesterInfoComplete(t *testing.T) {
	assert.True(t, RequesterInfo{Address: "12 MG Road", Phone: "98450"}.Complete())
	assert.False(t, RequesterInfo{Address: "12 MG Road", Phone: "  "}.Complete())
	assert.False(t, RequesterInfo{Phone: "98450"}.Complete())
}

func TestNewCollectionRequestSnapshotsEntries(t *testing.T) {
	entries := []QueueEntry{{ItemID: "a", Quantity: 5, UnitPrice: 10, EstimatedValue: 50}}
	req := NewCollectionRequest("r1", "u1", entries, RequesterInfo{Address: "x", Phone: "y"}, testNow)

	entries[0].Quantity = 100

	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, 50.0, req.TotalValue)
	assert.Equal(t, 5.0, req.Items[0].Quantity)
	require.Len(t, req.History, 1)
	assert.Equal(t, StatusPending, req.History[0].Status)
	assert.Equal(t, testNow, req.CreatedAt)
}

func TestCollectionRequestTransition(t *testing.T) {
	req := NewCollectionRequest("r1", "u1", nil, RequesterInfo{}, testNow)
	later := testNow.Add(time.Hour)

	assert.False(t, req.Transition(StatusCompleted, "done", later))
	assert.Equal(t, StatusPending, req.Status)
	assert.Len(t, req.History, 1)
	assert.Equal(t, testNow, req.UpdatedAt)

	assert.True(t, req.Transition(StatusAccepted, "accepted", later))
	assert.Equal(t, StatusAccepted, req.Status)
	require.Len(t, req.History, 2)
	assert.Equal(t, StatusChange{Status: StatusAccepted, Message: "accepted", ChangedAt: later}, req.History[1])
	assert.Equal(t, later, req.UpdatedAt)
}

func TestCollectionRequestClone(t *testing.T) {
	eta := testNow.Add(24 * time.Hour)
	req := NewCollectionRequest("r1", "u1", []QueueEntry{{ItemID: "a"}}, RequesterInfo{}, testNow)
	req.Collector = &CollectorInfo{ID: "c1", Rating: 4.5}
	req.EstimatedCollectionAt = &eta

	clone := req.Clone()
	clone.Items[0].ItemID = "changed"
	clone.History[0].Message = "changed"
	clone.Collector.Rating = 1
	*clone.EstimatedCollectionAt = testNow

	assert.Equal(t, "a", req.Items[0].ItemID)
	assert.Equal(t, "Collection request submitted", req.History[0].Message)
	assert.Equal(t, 4.5, req.Collector.Rating)
	assert.Equal(t, eta, *req.EstimatedCollectionAt)

	var nilReq *CollectionRequest
	assert.Nil(t, nilReq.Clone())
}
