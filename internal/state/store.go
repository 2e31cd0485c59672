package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Collection is a thread-safe ordered list of records keyed by an integer id.
// Background mutations write to it while the UI reads snapshots.
type Collection[T any] struct {
	mu     sync.RWMutex
	items  []T
	idOf   func(T) int
	loaded bool
}

// NewCollection returns an empty collection that identifies records with idOf.
func NewCollection[T any](idOf func(T) int) *Collection[T] {
	return &Collection[T]{idOf: idOf}
}

// Replace swaps the whole list, typically after a successful fetch.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
	c.loaded = true
}

// Snapshot returns a copy of the current list.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Loaded reports whether Replace has been called at least once.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// IDs returns the ids of every record in order.
func (c *Collection[T]) IDs() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int, len(c.items))
	for i, item := range c.items {
		ids[i] = c.idOf(item)
	}
	return ids
}

// Get returns the record with id.
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Prepend inserts item at the front.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Insert(c.items, 0, item)
}

// Append inserts item at the end.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// ReplaceByID swaps the record sharing item's id in place. It reports false
// when no such record exists.
func (c *Collection[T]) ReplaceByID(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(c.idOf(item))
	if i < 0 {
		return false
	}
	c.items[i] = item
	return true
}

// Remove deletes the record with id and reports whether it was present.
func (c *Collection[T]) Remove(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *Collection[T]) index(id int) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.idOf(item) == id })
}

// HealthSnapshot describes API reachability as seen by the background prober.
type HealthSnapshot struct {
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int
	Breaker             string
}

// IsOffline returns true when the API has been unreachable for multiple probes.
func (s HealthSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Health coordinates concurrent updates to the health snapshot.
type Health struct {
	mu       sync.RWMutex
	snapshot HealthSnapshot
}

// Record stores the outcome of one probe. On error the failure counter grows;
// on success it resets.
func (h *Health) Record(err error, breaker string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshot.LastChecked = time.Now()
	h.snapshot.Breaker = breaker
	if err != nil {
		h.snapshot.LastError = err
		h.snapshot.ConsecutiveFailures++
		return
	}
	h.snapshot.LastError = nil
	h.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current health snapshot.
func (h *Health) Snapshot() HealthSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := h.snapshot
	if h.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", h.snapshot.LastError)
	}
	return snap
}
