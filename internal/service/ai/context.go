package ai

import (
	"sync"

	"localchat/internal/models"
)

// ContextRegistry holds the uploaded file contexts shared across requests.
// Entries keep insertion order; re-uploading a file name replaces its entry
// in place. The set grows without bound for the process lifetime: there is
// deliberately no eviction, matching the accumulate-until-cleared contract.
//
// Uploads racing a concurrent chat may or may not be visible to that chat's
// prompt; only the lock's consistency is promised, not ordering.
type ContextRegistry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]models.FileContext
}

func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{entries: make(map[string]models.FileContext)}
}

// Put adds or replaces the context for fc.FileName.
func (r *ContextRegistry) Put(fc models.FileContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[fc.FileName]; !exists {
		r.order = append(r.order, fc.FileName)
	}
	r.entries[fc.FileName] = fc
}

// Snapshot returns the current contexts in insertion order. The slice is a
// copy; callers may hold it across the lock.
func (r *ContextRegistry) Snapshot() []models.FileContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FileContext, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Clear atomically drops every stored context.
func (r *ContextRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.entries = make(map[string]models.FileContext)
}

func (r *ContextRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
