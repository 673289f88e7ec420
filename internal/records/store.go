package records

import "sync"

// Store is the shared home of the live binding set. The scan task applies
// batches while the render path snapshots; all methods are safe for
// concurrent use. The lock is only ever held for in-memory work, never
// across I/O.
type Store struct {
	mu  sync.Mutex
	set Set
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Apply merges one response's bindings atomically. A concurrent Snapshot
// observes either none of the batch or all of it.
func (st *Store) Apply(batch []Binding) {
	if len(batch) == 0 {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.set.Apply(batch)
}

// Snapshot returns an independent copy of the current set. Later writes
// to the store do not affect the copy.
func (st *Store) Snapshot() Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.set.clone()
}

// Clear discards every binding. A restarted scan calls this so results
// from the previous query never bleed into the new one.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.set = Set{}
}

// Len reports the current number of bindings.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.set.Len()
}
