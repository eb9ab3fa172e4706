// Package registry keeps named extension objects so that applying the
// plugin more than once reuses the first instance.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTypeMismatch is returned when a name is already bound to a value of
// another type
var ErrTypeMismatch = errors.New("extension type mismatch")

// Registry maps names to extension values
type Registry struct {
	mu    sync.Mutex
	items map[string]any
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		items: make(map[string]any),
	}
}

// Find returns the value registered under name
func (r *Registry) Find(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[name]
	return v, ok
}

// Len returns the number of registered extensions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items)
}

// GetOrCreate returns the T registered under name, creating and registering
// it with create when the name is free.
func GetOrCreate[T any](r *Registry, name string, create func() T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T

	if existing, ok := r.items[name]; ok {
		v, ok := existing.(T)
		if !ok {
			return zero, fmt.Errorf("%w: %q holds %T, want %T", ErrTypeMismatch, name, existing, zero)
		}

		return v, nil
	}

	v := create()
	r.items[name] = v

	return v, nil
}
