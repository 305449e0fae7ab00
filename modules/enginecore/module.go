package enginecore

import (
	"context"
	"fmt"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/plugin"
)

// ModID is the scope of every identifier this module registers.
const ModID = "engine_core"

// Module implements the plugin.Module interface for this package.
type Module struct{}

// Metadata returns the module's static record.
func (m *Module) Metadata() plugin.LibraryMetadata {
	return plugin.LibraryMetadata{
		ModID:      ModID,
		ModAuthor:  "@ign-styly",
		ModName:    "Engine Core External",
		ModVersion: "0.0.1",
	}
}

// Run registers the fib task, the custom event type and the module's
// handlers, then raises one CustomEvent.
func (m *Module) Run(ctx context.Context, api *plugin.API) error {
	logger := ctxlog.FromContext(ctx)
	meta := m.Metadata()

	if err := api.EventBus.RegisterEvent(ctx, NewCustomEvent()); err != nil {
		return fmt.Errorf("register custom event: %w", err)
	}
	if err := api.TaskRegistry.Register(ctx, &FibTask{}, FibID); err != nil {
		return fmt.Errorf("register fib task: %w", err)
	}

	handlers := []struct {
		name string
		reg  func() error
	}{
		{"start", func() error { return api.EventBus.RegisterHandler(ctx, StartEventHandler(&meta), events.StartID) }},
		{"cgrpc", func() error { return api.EventBus.RegisterHandler(ctx, CgrpcHandler(), events.CgrpcID) }},
		{"custom", func() error { return api.EventBus.RegisterHandler(ctx, CustomEventHandler(), CustomEventID) }},
	}
	for _, h := range handlers {
		if err := h.reg(); err != nil {
			return fmt.Errorf("register %s handler: %w", h.name, err)
		}
	}
	logger.Debug("Registrations complete.", "handlers", len(handlers))

	if err := api.EventBus.Handle(ctx, CustomEventID, NewCustomEvent()); err != nil {
		return fmt.Errorf("raise custom event: %w", err)
	}
	return nil
}
