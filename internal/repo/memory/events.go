package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gracecommunity/churchhub/internal/domain/event"
)

type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
	}
}

func (r *EventsRepo) Create(_ context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) GetByID(_ context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

// ListApproved returns public events, ascending by date.
func (r *EventsRepo) ListApproved(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)

	for _, e := range r.items {
		if e.Approved {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out, nil
}

func (r *EventsRepo) ListPending(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)

	for _, e := range r.items {
		if !e.Approved {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *EventsRepo) ListByCreator(_ context.Context, userID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)

	for _, e := range r.items {
		if e.CreatedBy == userID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out, nil
}

func (r *EventsRepo) Update(_ context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	e.Title = req.Title
	e.Description = req.Description
	e.Date = req.Date
	e.Time = req.Time
	e.Location = req.Location
	e.Category = req.Category
	e.UpdatedAt = time.Now().UTC()
	r.items[id] = e

	return e, nil
}

func (r *EventsRepo) SetApproved(_ context.Context, id string) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	e.Approved = true
	e.UpdatedAt = time.Now().UTC()
	r.items[id] = e

	return e, nil
}

func (r *EventsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return event.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *EventsRepo) CountPending(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0

	for _, e := range r.items {
		if !e.Approved {
			n++
		}
	}

	return n, nil
}

// CountUpcomingApproved counts approved events dated today or later; the
// admin dashboard reports these as "active events".
func (r *EventsRepo) CountUpcomingApproved(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now().UTC().Truncate(24 * time.Hour)
	n := 0

	for _, e := range r.items {
		if e.Approved && !e.Date.Before(now) {
			n++
		}
	}

	return n, nil
}
