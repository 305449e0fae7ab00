package events

import (
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/plugin"
)

// StartID identifies the event raised once after every module has loaded.
var StartID = ident.ID("core", "start_event")

// StartEvent lists the modules that were loaded, in load order.
type StartEvent struct {
	event.Base
	Modules []plugin.LibraryMetadata `msgpack:"modules" cbor:"modules"`
}

// NewStartEvent creates a StartEvent for the given modules.
func NewStartEvent(modules []plugin.LibraryMetadata) *StartEvent {
	return &StartEvent{
		Base:    event.NewBase(StartID),
		Modules: append([]plugin.LibraryMetadata(nil), modules...),
	}
}

func (e *StartEvent) Clone() event.Event {
	c := *e
	c.Modules = append([]plugin.LibraryMetadata(nil), e.Modules...)
	return &c
}
