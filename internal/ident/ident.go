package ident

import (
	"fmt"
	"strings"
)

// separator joins scope and name in the textual form, e.g. "engine_core:fib".
const separator = ":"

// Identifier is an ordered (scope, name) pair. Scope is usually the owning
// module id; Name is unique within that scope for one kind of registration.
type Identifier struct {
	Scope string `msgpack:"scope" cbor:"scope" yaml:"scope"`
	Name  string `msgpack:"name" cbor:"name" yaml:"name"`
}

// ID is a shorthand constructor.
func ID(scope, name string) Identifier {
	return Identifier{Scope: scope, Name: name}
}

// Parse reads the "scope:name" form produced by String.
func Parse(s string) (Identifier, error) {
	scope, name, ok := strings.Cut(s, separator)
	if !ok {
		return Identifier{}, fmt.Errorf("invalid identifier %q: expected 'scope%sname'", s, separator)
	}
	id := ID(strings.TrimSpace(scope), strings.TrimSpace(name))
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Validate reports whether both parts are present and the scope does not
// contain the separator.
func (id Identifier) Validate() error {
	if id.Scope == "" || id.Name == "" {
		return fmt.Errorf("invalid identifier %q: scope and name must be non-empty", id.String())
	}
	if strings.Contains(id.Scope, separator) {
		return fmt.Errorf("invalid identifier %q: scope must not contain %q", id.String(), separator)
	}
	return nil
}

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

// String returns the canonical "scope:name" form.
func (id Identifier) String() string {
	return id.Scope + separator + id.Name
}

// Less orders identifiers by scope, then name. Useful for stable listings.
func (id Identifier) Less(other Identifier) bool {
	if id.Scope != other.Scope {
		return id.Scope < other.Scope
	}
	return id.Name < other.Name
}
