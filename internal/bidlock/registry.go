package bidlock

import "sync"

// Registry tracks a per-item "submission in progress" flag. It is the
// exclusivity primitive behind bid submission: between a successful Acquire
// and the matching Release no second submission for the same item can start,
// because the check-and-set runs under one mutex.
type Registry struct {
	mu    sync.Mutex
	locks map[string]bool
}

// NewRegistry creates an empty lock registry. Entries are created on first
// access and default to unlocked.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]bool)}
}

// Acquire marks the item locked and returns true iff it was previously
// unlocked. A false return leaves the registry unchanged.
func (r *Registry) Acquire(itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locks[itemID] {
		return false
	}
	r.locks[itemID] = true
	return true
}

// Release unconditionally marks the item unlocked. Releasing an already
// unlocked item is a no-op.
func (r *Registry) Release(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, itemID)
}

// Locked reports whether a submission for the item is in progress.
func (r *Registry) Locked(itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locks[itemID]
}
