package internal

import "sync"

// Loader lazily builds a value and caches it until Reset.
type Loader[T any] interface {
	Get() (T, error)
	// Cached returns the current value without building one.
	Cached() (T, bool)
	Reset()
}

var _ Loader[any] = (*loader[any])(nil)

type loader[T any] struct {
	mu        sync.Mutex
	getClient func() (T, error)
	cached    T
	ok        bool
}

func (c *loader[T]) Get() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok {
		return c.cached, nil
	}
	v, err := c.getClient()
	if err != nil {
		var zero T
		return zero, err
	}
	c.cached, c.ok = v, true
	return v, nil
}

func (c *loader[T]) Cached() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached, c.ok
}

// Reset drops the cached value so the next Get rebuilds it.
func (c *loader[T]) Reset() {
	c.mu.Lock()
	var zero T
	c.cached, c.ok = zero, false
	c.mu.Unlock()
}

func NewLoader[T any](getClient func() (T, error)) *loader[T] {
	return &loader[T]{
		getClient: getClient,
	}
}
