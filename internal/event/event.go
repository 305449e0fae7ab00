package event

import (
	"github.com/specialistvlad/enginecore/internal/ident"
)

// Event is a polymorphic, cancellable message dispatched by identifier.
type Event interface {
	ID() ident.Identifier
	// Cancel marks the event as suppressed. Calling it again has no effect.
	Cancel()
	IsCancelled() bool
	// Clone returns an independent copy of the concrete event.
	Clone() Event
}

// Base holds the fields every event carries. Embed it by value in a concrete
// event type and implement Clone on the concrete type.
type Base struct {
	Identifier ident.Identifier `msgpack:"id" cbor:"id"`
	Cancelled  bool             `msgpack:"cancelled" cbor:"cancelled"`
}

// NewBase returns a Base for an uncancelled event with the given identifier.
func NewBase(id ident.Identifier) Base {
	return Base{Identifier: id}
}

func (b *Base) ID() ident.Identifier { return b.Identifier }

func (b *Base) Cancel() { b.Cancelled = true }

func (b *Base) IsCancelled() bool { return b.Cancelled }
