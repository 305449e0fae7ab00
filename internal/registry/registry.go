package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/ident"
)

// Registry holds the entries registered under each identifier for one kind
// of registration ("task", "handler"). It is safe for concurrent use.
type Registry[T any] struct {
	kind   string
	policy Policy

	mu      sync.RWMutex
	entries map[ident.Identifier][]T
}

// New creates an empty registry. kind is used in log lines and errors.
func New[T any](kind string, policy Policy) *Registry[T] {
	if _, err := ParsePolicy(string(policy)); err != nil {
		panic(fmt.Sprintf("registry %s: %v", kind, err))
	}
	return &Registry[T]{
		kind:    kind,
		policy:  policy,
		entries: make(map[ident.Identifier][]T),
	}
}

// Policy returns the duplicate-registration policy.
func (r *Registry[T]) Policy() Policy { return r.policy }

// Register stores v under id according to the registry's policy.
func (r *Registry[T]) Register(ctx context.Context, id ident.Identifier, v T) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("cannot register %s: %w", r.kind, err)
	}
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.entries[id]
	switch {
	case !exists:
		r.entries[id] = []T{v}
	case r.policy == PolicyReject:
		return &DuplicateRegistrationError{Kind: r.kind, ID: id}
	case r.policy == PolicyOverwrite:
		logger.Warn("Overwriting existing registration.", "kind", r.kind, "id", id.String(), "replaced", len(existing))
		r.entries[id] = []T{v}
	default:
		r.entries[id] = append(existing, v)
	}
	logger.Debug("Registered.", "kind", r.kind, "id", id.String(), "count", len(r.entries[id]))
	return nil
}

// Lookup returns the entries for id in registration order. The returned
// slice is a copy and may be modified by the caller.
func (r *Registry[T]) Lookup(id ident.Identifier) ([]T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	out := make([]T, len(entries))
	copy(out, entries)
	return out, true
}

// First returns the earliest registered entry for id.
func (r *Registry[T]) First(id ident.Identifier) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var zero T
	entries, ok := r.entries[id]
	if !ok || len(entries) == 0 {
		return zero, false
	}
	return entries[0], true
}

// Keys returns every claimed identifier, sorted.
func (r *Registry[T]) Keys() []ident.Identifier {
	r.mu.RLock()
	keys := make([]ident.Identifier, 0, len(r.entries))
	for id := range r.entries {
		keys = append(keys, id)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Len returns the number of claimed identifiers.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
