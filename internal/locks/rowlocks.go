// Package locks tracks which order rows have a mutation in flight.
package locks

import (
	"sort"
	"sync"
)

// RowLocks is an advisory per-key lock. It never blocks: a second TryAcquire
// for a held key fails until the holder releases it.
type RowLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewRowLocks() *RowLocks {
	return &RowLocks{held: make(map[string]struct{})}
}

func (l *RowLocks) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

func (l *RowLocks) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

func (l *RowLocks) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}

// Keys returns the held keys, sorted.
func (l *RowLocks) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.held))
	for k := range l.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
