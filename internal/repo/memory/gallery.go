package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gracecommunity/churchhub/internal/domain/gallery"
)

type GalleryRepo struct {
	mu    sync.RWMutex
	items map[string]gallery.Item
}

func NewGalleryRepo() *GalleryRepo {
	return &GalleryRepo{
		items: make(map[string]gallery.Item),
	}
}

func (r *GalleryRepo) Create(_ context.Context, it gallery.Item) (gallery.Item, error) {
	r.mu.Lock()
	r.items[it.ID] = it
	r.mu.Unlock()

	return it, nil
}

func (r *GalleryRepo) GetByID(_ context.Context, id string) (gallery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]

	if !ok {
		return gallery.Item{}, gallery.ErrNotFound
	}

	return it, nil
}

func (r *GalleryRepo) ListApproved(_ context.Context) ([]gallery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gallery.Item, 0)

	for _, it := range r.items {
		if it.Approved {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *GalleryRepo) ListPending(_ context.Context) ([]gallery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gallery.Item, 0)

	for _, it := range r.items {
		if !it.Approved {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *GalleryRepo) ListByCreator(_ context.Context, userID string) ([]gallery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gallery.Item, 0)

	for _, it := range r.items {
		if it.CreatedBy == userID {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *GalleryRepo) SetApproved(_ context.Context, id string) (gallery.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]

	if !ok {
		return gallery.Item{}, gallery.ErrNotFound
	}

	it.Approved = true
	it.UpdatedAt = time.Now().UTC()
	r.items[id] = it

	return it, nil
}

func (r *GalleryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return gallery.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *GalleryRepo) CountPending(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0

	for _, it := range r.items {
		if !it.Approved {
			n++
		}
	}

	return n, nil
}
