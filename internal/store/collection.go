// Package store holds the in-memory mirror of a backend collection.
// Each resource owns exactly one Collection and is its only writer; the
// cache is reconciled after every CRUD round trip instead of refetched.
package store

import "sync"

// Item is anything a Collection can cache, located by its server-assigned id.
type Item interface {
	StoreID() string
}

// Collection is a mutex-guarded slice cache plus the loading/error flags the
// UI layer renders from. New items are prepended, relative order is otherwise
// stable, and update/remove of an unknown id is a silent no-op.
//
// Fetches are tagged with a monotonically increasing sequence number and a
// response older than the newest applied one is discarded, so a slow list
// response cannot clobber the result of a later one.
type Collection[T Item] struct {
	mu         sync.RWMutex
	items      []T
	loading    bool
	lastErr    error
	nextSeq    uint64
	appliedSeq uint64
}

func NewCollection[T Item]() *Collection[T] {
	return &Collection[T]{}
}

// BeginFetch marks the collection as loading and hands out the sequence
// number the eventual response must present to ApplyFetch / FetchFailed.
func (c *Collection[T]) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.nextSeq++
	return c.nextSeq
}

// ApplyFetch replaces the whole cache with the fetched items, in backend
// order, and clears the error flag. Stale responses are discarded and the
// cache stays untouched; reports whether the response was applied.
func (c *Collection[T]) ApplyFetch(seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.appliedSeq {
		return false
	}
	c.appliedSeq = seq

	c.items = make([]T, len(items))
	copy(c.items, items)
	c.loading = false
	c.lastErr = nil
	return true
}

// FetchFailed records the error of a failed fetch, leaving the cached items
// untouched. A failure older than an already applied response is discarded.
func (c *Collection[T]) FetchFailed(seq uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.appliedSeq {
		return false
	}

	c.loading = false
	c.lastErr = err
	return true
}

// StartAction flips the loading flag for a mutation round trip.
func (c *Collection[T]) StartAction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
}

// Prepend puts a freshly created item in front of the cached ones.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{item}, c.items...)
	c.loading = false
	c.lastErr = nil
}

// Update replaces the cached item with the same id, preserving its position.
// No-op if the id is not cached.
func (c *Collection[T]) Update(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].StoreID() == item.StoreID() {
			c.items[i] = item
			break
		}
	}
	c.loading = false
	c.lastErr = nil
}

// Remove filters the given id out of the cache. No-op if the id is absent.
func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].StoreID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.loading = false
	c.lastErr = nil
}

// SetError records a failed mutation. The cached items are never touched on
// failure - the user keeps seeing last-known-good data.
func (c *Collection[T]) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.lastErr = err
}

// Items returns a copy of the cached items, newest first.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.items {
		if c.items[i].StoreID() == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the error of the last failed action, nil after any success.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
