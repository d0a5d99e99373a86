package wizard

// Update replaces one top-level field of a form state and returns the new
// state. Implementations must not mutate slices or maps reachable from the
// state they receive; they build fresh ones instead, so snapshots handed out
// earlier by Store.Get never change underneath their readers.
type Update[S any] func(S) S

// Store is the single source of truth for the field values of one wizard
// session. Writes are never validated; raw user input is kept as typed.
type Store[S any] struct {
	state S
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// Get returns the current snapshot.
func (s *Store[S]) Get() S {
	return s.state
}

// Update applies updates in order.
func (s *Store[S]) Update(updates ...Update[S]) {
	for _, u := range updates {
		if u == nil {
			continue
		}
		s.state = u(s.state)
	}
}
