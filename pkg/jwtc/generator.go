package jwtc

import (
	"fmt"
	"sync"
)

// Generator is anything that can turn a claim set into a signed token
// string. The Codec is the default implementation; alternatives are
// registered by name and selected through configuration.
type Generator interface {
	Name() string
	Generate(Claims) (string, error)
	Validate() error
}

// Registry is a named-strategy table of token generators with a fixed
// fallback. Resolution happens once at configuration-load time.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Generator
	fallback string
}

// NewRegistry creates a registry seeded with the fallback generator.
func NewRegistry(fallback Generator) *Registry {
	r := &Registry{byName: make(map[string]Generator), fallback: fallback.Name()}
	r.byName[fallback.Name()] = fallback
	return r
}

// Register adds or replaces a generator under its own name.
func (r *Registry) Register(g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[g.Name()] = g
}

// Resolve returns the generator registered under name, falling back to the
// default when name is empty. A missing registration yields
// ErrGeneratorNotFound; a registration that fails its own configuration
// check yields ErrGeneratorUnusable.
func (r *Registry) Resolve(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.fallback
	}

	g, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGeneratorNotFound, name)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrGeneratorUnusable, name, err)
	}
	return g, nil
}
