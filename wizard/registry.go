package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard: session not found")

type registryEntry[T any] struct {
	value   T
	touched time.Time
}

// Registry keeps the in-progress wizard sessions of the running server.
// Sessions live only in memory and are dropped after ttl without activity.
// Callers must do all work on a session inside Do so that two requests for
// the same session never interleave.
type Registry[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*registryEntry[T]
}

func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*registryEntry[T]),
	}
}

// Create stores a new session built by build and returns its id.
func (r *Registry[T]) Create(build func(id string) T) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	id := uuid.NewString()
	r.entries[id] = &registryEntry[T]{value: build(id), touched: r.now()}
	return id
}

// Do runs fn with the session stored under id while holding the registry lock.
func (r *Registry[T]) Do(id string, fn func(T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	entry, ok := r.entries[id]
	if !ok {
		return ErrSessionNotFound
	}
	entry.touched = r.now()
	return fn(entry.value)
}

// Take runs fn like Do and removes the session when fn returns nil, all
// under the registry lock. A later Do or Take for the same id reports
// ErrSessionNotFound, so a session can be claimed at most once.
func (r *Registry[T]) Take(id string, fn func(T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	var zero T
	entry, ok := r.entries[id]
	if !ok {
		return zero, ErrSessionNotFound
	}
	entry.touched = r.now()
	if err := fn(entry.value); err != nil {
		return zero, err
	}
	delete(r.entries, id)
	return entry.value, nil
}

// Restore puts a taken session back under its id.
func (r *Registry[T]) Restore(id string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &registryEntry[T]{value: value, touched: r.now()}
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (r *Registry[T]) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[T]) pruneLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)
	for id, entry := range r.entries {
		if entry.touched.Before(cutoff) {
			delete(r.entries, id)
		}
	}
}
