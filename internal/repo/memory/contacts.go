package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gracecommunity/churchhub/internal/domain/contact"
)

type ContactsRepo struct {
	mu    sync.RWMutex
	items map[string]contact.Message
}

func NewContactsRepo() *ContactsRepo {
	return &ContactsRepo{
		items: make(map[string]contact.Message),
	}
}

func (r *ContactsRepo) Create(_ context.Context, m contact.Message) (contact.Message, error) {
	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

// List returns all messages, newest first. Admin-only read.
func (r *ContactsRepo) List(_ context.Context) ([]contact.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contact.Message, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}
