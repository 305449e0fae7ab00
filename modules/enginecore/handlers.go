package enginecore

import (
	"context"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/plugin"
)

// GrpcHandlerID names the remote handler whose cgrpc requests this module
// serves. Other CgrpcEvents are left untouched.
var GrpcHandlerID = ident.ID(ModID, "grpc")

// CustomEventHandler logs every CustomEvent.
func CustomEventHandler() event.Handler {
	return event.HandlerFunc[*CustomEvent](func(ctx context.Context, ev *CustomEvent) error {
		ctxlog.FromContext(ctx).Info("Custom Event", "id", ev.ID().String())
		return nil
	})
}

// StartEventHandler logs the loaded modules and reports which module handled
// the event. meta is shared, never copied or modified.
func StartEventHandler(meta *plugin.LibraryMetadata) event.Handler {
	return event.Bind(meta, func(ctx context.Context, ev *events.StartEvent, meta *plugin.LibraryMetadata) error {
		logger := ctxlog.FromContext(ctx)
		for _, m := range ev.Modules {
			logger.Info("Module:", "id", m.ModID, "name", m.DisplayName(), "version", m.ModVersion)
		}
		logger.Info("Event handled.", "id", ev.ID().String(), "handled_by", meta.ModName, "author", meta.ModAuthor)
		return nil
	})
}

// CgrpcHandler moves the request payload of events addressed to
// GrpcHandlerID into the event output, leaving the payload empty.
func CgrpcHandler() event.Handler {
	target := GrpcHandlerID.String()
	return event.HandlerFunc[*events.CgrpcEvent](func(ctx context.Context, ev *events.CgrpcEvent) error {
		if ev.Handler != target {
			return nil
		}
		if ev.Output == nil {
			ev.Output = &events.Output{}
		}
		_, _ = ev.Output.Write(ev.Payload)
		ev.Payload = nil
		ctxlog.FromContext(ctx).Info("grpc event!", "bytes", ev.Output.Len())
		return nil
	})
}
