package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/metrics"
	"github.com/specialistvlad/enginecore/internal/registry"
)

// CancellationPolicy decides whether the bus consults the cancellation flag
// between handler invocations.
type CancellationPolicy string

const (
	// CancelAdvisory runs every handler regardless of the flag.
	CancelAdvisory CancellationPolicy = "advisory"
	// CancelStop skips the remaining handlers once the event is cancelled.
	CancelStop CancellationPolicy = "stop"
)

// ParseCancellationPolicy converts user input into a CancellationPolicy.
func ParseCancellationPolicy(s string) (CancellationPolicy, error) {
	p := CancellationPolicy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case CancelAdvisory, CancelStop:
		return p, nil
	default:
		return "", fmt.Errorf("invalid cancellation policy %q: must be 'advisory' or 'stop'", s)
	}
}

// Bus owns the handler registry and the registry of event type templates.
type Bus struct {
	handlers     *registry.Registry[Handler]
	types        *registry.Registry[Event]
	cancellation CancellationPolicy
}

// NewBus creates a Bus. policy governs duplicate handler registrations; event
// type registrations are always rejected on duplicates.
func NewBus(policy registry.Policy, cancellation CancellationPolicy) *Bus {
	if _, err := ParseCancellationPolicy(string(cancellation)); err != nil {
		panic(err)
	}
	return &Bus{
		handlers:     registry.New[Handler]("handler", policy),
		types:        registry.New[Event]("event type", registry.PolicyReject),
		cancellation: cancellation,
	}
}

// HandlerPolicy returns the duplicate-registration policy for handlers.
func (b *Bus) HandlerPolicy() registry.Policy { return b.handlers.Policy() }

// CancellationPolicy returns the bus's cancellation policy.
func (b *Bus) CancellationPolicy() CancellationPolicy { return b.cancellation }

// RegisterHandler associates h with id.
func (b *Bus) RegisterHandler(ctx context.Context, h Handler, id ident.Identifier) error {
	if h == nil {
		return fmt.Errorf("cannot register nil handler under '%s'", id)
	}
	return b.handlers.Register(ctx, id, h)
}

// Handlers returns the handlers registered for id, in registration order.
func (b *Bus) Handlers(id ident.Identifier) []Handler {
	hs, _ := b.handlers.Lookup(id)
	return hs
}

// HandlerIDs lists identifiers that have at least one handler.
func (b *Bus) HandlerIDs() []ident.Identifier { return b.handlers.Keys() }

// RegisterEvent records template as the prototype for its identifier so the
// host and other modules can raise the event by identifier alone.
func (b *Bus) RegisterEvent(ctx context.Context, template Event) error {
	if template == nil {
		return fmt.Errorf("cannot register nil event type")
	}
	return b.types.Register(ctx, template.ID(), template)
}

// EventIDs lists registered event types.
func (b *Bus) EventIDs() []ident.Identifier { return b.types.Keys() }

// NewEvent returns a fresh clone of the registered template for id.
func (b *Bus) NewEvent(id ident.Identifier) (Event, error) {
	tmpl, ok := b.types.First(id)
	if !ok {
		return nil, fmt.Errorf("no event type registered under '%s'", id)
	}
	return tmpl.Clone(), nil
}

// Raise creates an event from its registered template, dispatches it, and
// returns it so the caller can inspect the outcome (e.g. IsCancelled).
func (b *Bus) Raise(ctx context.Context, id ident.Identifier) (Event, error) {
	ev, err := b.NewEvent(id)
	if err != nil {
		return nil, err
	}
	return ev, b.Handle(ctx, id, ev)
}

// Handle dispatches ev to every handler registered under id in registration
// order. A handler error or misrouted event aborts the dispatch and is
// returned; no handlers is not an error.
func (b *Bus) Handle(ctx context.Context, id ident.Identifier, ev Event) error {
	if ev == nil {
		return fmt.Errorf("cannot dispatch nil event under '%s'", id)
	}
	ctx = ctxlog.With(ctx, "event", id.String(), "dispatch_id", uuid.NewString())
	logger := ctxlog.FromContext(ctx)

	if evID := ev.ID(); evID != id {
		logger.Warn("Dispatch identifier differs from event identifier.", "event_id", evID.String())
	}

	handlers, ok := b.handlers.Lookup(id)
	if !ok {
		logger.Debug("No handlers registered for event.")
		metrics.DispatchesTotal.WithLabelValues(id.String(), metrics.OutcomeOK).Inc()
		return nil
	}

	logger.Debug("Dispatching event.", "handlers", len(handlers), "cancellation", string(b.cancellation))
	for i, h := range handlers {
		if b.cancellation == CancelStop && ev.IsCancelled() {
			logger.Debug("Event cancelled, skipping remaining handlers.", "skipped", len(handlers)-i)
			break
		}
		metrics.HandlerInvocationsTotal.WithLabelValues(id.String()).Inc()
		if err := h.Handle(ctx, ev); err != nil {
			metrics.DispatchesTotal.WithLabelValues(id.String(), metrics.OutcomeError).Inc()
			logger.Error("Handler failed.", "index", i, "error", err)
			return &HandlerError{EventID: id.String(), Index: i, Err: err}
		}
	}

	if ev.IsCancelled() {
		metrics.CancellationsTotal.WithLabelValues(id.String()).Inc()
		logger.Debug("Event finished dispatch cancelled.")
	}
	metrics.DispatchesTotal.WithLabelValues(id.String(), metrics.OutcomeOK).Inc()
	return nil
}
