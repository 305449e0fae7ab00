package enginecore

import (
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/ident"
)

// CustomEventID identifies CustomEvent.
var CustomEventID = ident.ID(ModID, "custom_event")

// CustomEvent is the module's own event type. It carries no payload.
type CustomEvent struct {
	event.Base
}

// NewCustomEvent returns an uncancelled CustomEvent.
func NewCustomEvent() *CustomEvent {
	return &CustomEvent{Base: event.NewBase(CustomEventID)}
}

func (e *CustomEvent) Clone() event.Event {
	c := *e
	return &c
}
