package desk

import (
	"slices"
	"sync"

	"github.com/wellywell/orderdesk/internal/types"
)

// Registry keeps one desk per user.
type Registry struct {
	backend Backend
	stores  Stores
	opts    []Option

	mu    sync.Mutex
	desks map[string]*Desk
	// retired desks may still run background writes.
	retired []*Desk
}

func NewRegistry(b Backend, stores Stores, opts ...Option) *Registry {
	return &Registry{
		backend: b,
		stores:  stores,
		opts:    opts,
		desks:   make(map[string]*Desk),
	}
}

// For returns the desk of a user, creating it on first use. A role change
// replaces the desk; the old one hands its notices to the new one.
func (r *Registry) For(user types.User) *Desk {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.desks[user.Username]
	if ok && old.user == user {
		return old
	}
	d := New(r.backend, r.stores, user, r.opts...)
	if ok {
		old.handOver(d)
		r.retired = append(r.retired, old)
	}
	r.desks[user.Username] = d
	return d
}

// Wait blocks until every desk finished its background writes.
func (r *Registry) Wait() {
	r.mu.Lock()
	desks := make([]*Desk, 0, len(r.desks)+len(r.retired))
	for _, d := range r.desks {
		desks = append(desks, d)
	}
	retired := len(r.retired)
	desks = append(desks, r.retired...)
	r.mu.Unlock()

	for _, d := range desks {
		d.Wait()
	}

	r.mu.Lock()
	r.retired = slices.Delete(r.retired, 0, retired)
	r.mu.Unlock()
}
