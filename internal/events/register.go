package events

import (
	"context"
	"fmt"

	"github.com/specialistvlad/enginecore/internal/event"
)

// RegisterBuiltins registers the templates of the host's built-in events.
func RegisterBuiltins(ctx context.Context, bus *event.Bus) error {
	for _, tmpl := range []event.Event{
		NewStartEvent(nil),
		NewCgrpcEvent("", nil),
	} {
		if err := bus.RegisterEvent(ctx, tmpl); err != nil {
			return fmt.Errorf("failed to register built-in event: %w", err)
		}
	}
	return nil
}
