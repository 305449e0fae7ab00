package plugin

import (
	"log/slog"

	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/registry"
	"github.com/specialistvlad/enginecore/internal/task"
)

// API is the host handle passed to Module.Run. Modules must not retain it
// after Run returns. Codec is the payload format this host was configured
// with; modules serialize through it rather than choosing their own.
type API struct {
	TaskRegistry *task.Registry
	EventBus     *event.Bus
	Codec        codec.Codec
	Logger       *slog.Logger
}

// NewAPI creates a host handle with empty registries.
func NewAPI(logger *slog.Logger, c codec.Codec, handlerPolicy registry.Policy, cancellation event.CancellationPolicy) *API {
	return &API{
		TaskRegistry: task.NewRegistry(c),
		Codec:        c,
		EventBus:     event.NewBus(handlerPolicy, cancellation),
		Logger:       logger,
	}
}
