package registry

import (
	"fmt"

	"github.com/specialistvlad/enginecore/internal/ident"
)

// DuplicateRegistrationError is returned by a reject-policy registry when an
// identifier is already claimed. It is fatal to that registration call only.
type DuplicateRegistrationError struct {
	Kind string
	ID   ident.Identifier
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s with identifier '%s' already registered", e.Kind, e.ID)
}
