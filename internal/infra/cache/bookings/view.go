// Package bookings keeps a short-lived per-date snapshot of scheduled bookings
// in front of the booking store.
package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// View is a read-through cache of scheduled bookings keyed by calendar date.
// Snapshots are copied on the way in and out, so callers may not mutate cached state.
type View struct {
	store   Store
	cache   *expirable.LRU[string, []*domain.Booking]
	metrics Metrics

	mu sync.Mutex
	// writes counts Upsert and Invalidate calls; a load that overlapped a write is not cached
	writes uint64
}

// NewView creates a view holding at most size dates, each for at most ttl.
func NewView(store Store, size int, ttl time.Duration, metrics Metrics) *View {
	return &View{
		store:   store,
		cache:   expirable.NewLRU[string, []*domain.Booking](size, nil, ttl),
		metrics: metrics,
	}
}

// GetBookingsForDate returns the scheduled bookings of date ordered by start time.
func (v *View) GetBookingsForDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	key := date.Format(domain.DateFormat)

	if cached, ok := v.cache.Get(key); ok {
		v.recordLookup(true)
		return clone(cached), nil
	}
	v.recordLookup(false)

	v.mu.Lock()
	writesBefore := v.writes
	v.mu.Unlock()

	loaded, err := v.store.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	snapshot := clone(loaded)
	sortByStart(snapshot)

	v.mu.Lock()
	if v.writes == writesBefore {
		v.cache.Add(key, snapshot)
	}
	v.mu.Unlock()

	return clone(snapshot), nil
}

// Upsert records a confirmed booking in the cached snapshot of its date,
// replacing any earlier record with the same id. Dates that are not cached are left alone.
func (v *View) Upsert(booking *domain.Booking) {
	if booking == nil {
		return
	}
	key := booking.Date.Format(domain.DateFormat)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.writes++

	cached, ok := v.cache.Peek(key)
	if !ok {
		return
	}

	updated := make([]*domain.Booking, 0, len(cached)+1)
	for _, b := range cached {
		if b.ID != booking.ID {
			updated = append(updated, b)
		}
	}
	if booking.IsScheduled() {
		copied := *booking
		updated = append(updated, &copied)
	}
	sortByStart(updated)

	v.cache.Add(key, updated)
}

// Invalidate drops the snapshot of date.
func (v *View) Invalidate(date time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writes++
	v.cache.Remove(date.Format(domain.DateFormat))
}

func (v *View) recordLookup(hit bool) {
	if v.metrics != nil {
		v.metrics.IncCacheLookup(hit)
	}
}

func clone(src []*domain.Booking) []*domain.Booking {
	out := make([]*domain.Booking, len(src))
	for i, b := range src {
		copied := *b
		out[i] = &copied
	}
	return out
}

func sortByStart(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Minutes() < bookings[j].StartTime.Minutes()
	})
}
