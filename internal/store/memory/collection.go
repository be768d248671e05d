package memory

import "sync"

// collection is an insertion-ordered list of records guarded by its own lock.
// clone is applied to every record crossing the collection boundary.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
	clone func(T) T
}

func newCollection[T any](id func(T) string, clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{id: id, clone: clone}
}

func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// snapshot copies the items; the caller holds the lock.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = c.clone(v)
	}
	return out
}

// get returns the first record with the given id.
func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) index(id string) int {
	for i, v := range c.items {
		if c.id(v) == id {
			return i
		}
	}
	return -1
}

// filter returns every record matching pred, in order. The result is never nil.
func (c *collection[T]) filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []T{}
	for _, v := range c.items {
		if pred(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

func (c *collection[T]) insert(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, c.clone(v))
	return c.clone(v)
}

// update replaces the first record with the given id by fn(record) in place.
func (c *collection[T]) update(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	c.items[i] = fn(c.clone(c.items[i]))
	return c.clone(c.items[i]), true
}

// deleteWhere removes every record matching pred and returns the survivors.
func (c *collection[T]) deleteWhere(pred func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, v := range c.items {
		if !pred(v) {
			kept = append(kept, v)
		}
	}
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	return c.snapshot()
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
