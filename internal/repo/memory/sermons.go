package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gracecommunity/churchhub/internal/domain/sermon"
)

type SermonsRepo struct {
	mu    sync.RWMutex
	items map[string]sermon.Sermon
}

func NewSermonsRepo() *SermonsRepo {
	return &SermonsRepo{
		items: make(map[string]sermon.Sermon),
	}
}

func (r *SermonsRepo) Create(_ context.Context, s sermon.Sermon) (sermon.Sermon, error) {
	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()

	return s, nil
}

func (r *SermonsRepo) GetByID(_ context.Context, id string) (sermon.Sermon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]

	if !ok {
		return sermon.Sermon{}, sermon.ErrNotFound
	}

	return s, nil
}

// ListApproved returns public sermons, most recent first.
func (r *SermonsRepo) ListApproved(_ context.Context) ([]sermon.Sermon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sermon.Sermon, 0)

	for _, s := range r.items {
		if s.Approved {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	return out, nil
}

func (r *SermonsRepo) ListPending(_ context.Context) ([]sermon.Sermon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sermon.Sermon, 0)

	for _, s := range r.items {
		if !s.Approved {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *SermonsRepo) ListByCreator(_ context.Context, userID string) ([]sermon.Sermon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sermon.Sermon, 0)

	for _, s := range r.items {
		if s.CreatedBy == userID {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	return out, nil
}

func (r *SermonsRepo) Update(_ context.Context, id string, req sermon.UpdateSermonRequest) (sermon.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]

	if !ok {
		return sermon.Sermon{}, sermon.ErrNotFound
	}

	s.Title = req.Title
	s.Description = req.Description
	s.Pastor = req.Pastor
	s.Date = req.Date
	s.Duration = req.Duration
	s.AudioURL = req.AudioURL
	s.ThumbnailURL = req.ThumbnailURL
	s.UpdatedAt = time.Now().UTC()
	r.items[id] = s

	return s, nil
}

func (r *SermonsRepo) SetApproved(_ context.Context, id string) (sermon.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]

	if !ok {
		return sermon.Sermon{}, sermon.ErrNotFound
	}

	s.Approved = true
	s.UpdatedAt = time.Now().UTC()
	r.items[id] = s

	return s, nil
}

func (r *SermonsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return sermon.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *SermonsRepo) CountPending(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0

	for _, s := range r.items {
		if !s.Approved {
			n++
		}
	}

	return n, nil
}
