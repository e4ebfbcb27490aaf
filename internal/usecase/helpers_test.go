package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"recyclemart/internal/adapter/repository"
	"recyclemart/internal/domain/entity"
	domainrepo "recyclemart/internal/domain/repository"
	"recyclemart/internal/infrastructure/lock"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Events() []entity.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *recordingPublisher) Types() []entity.EventType {
	var out []entity.EventType
	for _, e := range p.Events() {
		out = append(out, e.Type)
	}
	return out
}

var testItems = []entity.CatalogItem{
	{ID: "paper-newspaper", Name: "Newspaper", Category: entity.CategoryPaper, UnitPrice: 10},
	{ID: "glass-pet-bottle", Name: "PET Bottle", Category: entity.CategoryGlassAndPlastic, UnitPrice: 1.5},
	{ID: "metal-iron", Name: "Iron Scrap", Category: entity.CategoryMetalAndSteel, UnitPrice: 28},
	{ID: "ewaste-mobile", Name: "Mobile Phone", Category: entity.CategoryEwaste, UnitPrice: 60},
	{ID: "brass-utensils", Name: "Brass Utensils", Category: entity.CategoryBrass, UnitPrice: 305},
}

type testEnv struct {
	store     domainrepo.CollectionStore
	clock     *fakeClock
	publisher *recordingPublisher
	catalog   *CatalogUseCase
	queue     *QueueUseCase
	requests  *CollectionRequestUseCase
	ratings   *RatingUseCase
	collector *CollectorUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog, err := NewCatalogUseCase(testItems)
	require.NoError(t, err)

	store := repository.NewMemoryCollectionStore()
	clock := newFakeClock()
	publisher := &recordingPublisher{}
	locks := lock.NewKeyed()

	return &testEnv{
		store:     store,
		clock:     clock,
		publisher: publisher,
		catalog:   catalog,
		queue:     NewQueueUseCase(store, catalog, locks, clock.Now),
		requests:  NewCollectionRequestUseCase(store, locks, publisher, clock.Now, 24*time.Hour),
		ratings:   NewRatingUseCase(store, locks, publisher, clock.Now, 20),
		collector: NewCollectorUseCase(store),
	}
}

var completeProfile = entity.RequesterInfo{Name: "Asha", Address: "12 MG Road, Pune", Phone: "9845012345"}

// completedRequest drives a fresh request for userID through to completed,
// accepted by collectorID.
func (env *testEnv) completedRequest(t *testing.T, userID, collectorID string) *entity.CollectionRequest {
	t.Helper()
	ctx := context.Background()

	_, err := env.queue.AddItem(ctx, userID, "paper-newspaper")
	require.NoError(t, err)

	req, err := env.requests.Submit(ctx, userID, completeProfile)
	require.NoError(t, err)

	_, err = env.requests.Accept(ctx, req.ID, CollectorInput{ID: collectorID, Name: "Ravi"})
	require.NoError(t, err)
	_, err = env.requests.StartProgress(ctx, req.ID)
	require.NoError(t, err)
	done, err := env.requests.Complete(ctx, req.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Minute)
	return done
}
