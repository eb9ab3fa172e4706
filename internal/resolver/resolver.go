// Package resolver looks up build properties across a project's
// local.properties override file and a fallback source.
package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/Norgate-AV/andromeda/internal/properties"
)

// LocalFile is the per-project override file name
const LocalFile = "local.properties"

// Source is the fallback property source, typically the host's own
// project properties
type Source interface {
	FindProperty(key string) (string, bool, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(key string) (string, bool, error)

// FindProperty calls f(key)
func (f SourceFunc) FindProperty(key string) (string, bool, error) {
	return f(key)
}

// Resolver resolves keys from projectRoot/local.properties first, then the
// fallback source, then NotFound.
type Resolver struct {
	store    *properties.Store
	root     string
	fallback Source
}

// New creates a resolver. fallback may be nil.
func New(store *properties.Store, projectRoot string, fallback Source) *Resolver {
	return &Resolver{
		store:    store,
		root:     projectRoot,
		fallback: fallback,
	}
}

// LocalPath returns the override file consulted first
func (r *Resolver) LocalPath() string {
	return filepath.Join(r.root, LocalFile)
}

// Get resolves key. A missing key is not an error; the returned value is
// NotFound. Errors come only from unreadable property files.
func (r *Resolver) Get(key string) (Value, error) {
	local, err := r.store.Load(r.LocalPath())
	if err != nil {
		return NotFound, fmt.Errorf("failed to load %s: %w", LocalFile, err)
	}

	if v, ok := local.Get(key); ok {
		return Value(v), nil
	}

	if r.fallback != nil {
		v, ok, err := r.fallback.FindProperty(key)
		if err != nil {
			return NotFound, fmt.Errorf("failed to look up %q: %w", key, err)
		}

		if ok {
			return Value(v), nil
		}
	}

	return NotFound, nil
}

// String resolves key as a plain string (NotFound when absent)
func (r *Resolver) String(key string) (string, error) {
	v, err := r.Get(key)
	return string(v), err
}

// Int resolves key as an integer, def when absent or malformed
func (r *Resolver) Int(key string, def int) (int, error) {
	v, err := r.Get(key)
	if err != nil {
		return def, err
	}

	return v.Int(def), nil
}

// Bool resolves key as a boolean, def when absent or unrecognised
func (r *Resolver) Bool(key string, def bool) (bool, error) {
	v, err := r.Get(key)
	if err != nil {
		return def, err
	}

	return v.Bool(def), nil
}

// Float resolves key as a float, def when absent or malformed
func (r *Resolver) Float(key string, def float64) (float64, error) {
	v, err := r.Get(key)
	if err != nil {
		return def, err
	}

	return v.Float(def), nil
}

// List resolves key as a delimited list
func (r *Resolver) List(key, delim string) ([]string, error) {
	v, err := r.Get(key)
	if err != nil {
		return []string{}, err
	}

	return v.List(delim), nil
}
