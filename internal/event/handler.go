package event

import (
	"context"
	"fmt"
)

// Handler is invoked once per dispatch of an event it is registered for.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

// HandlerFunc adapts a function bound to one concrete event type E into a
// Handler. It captures nothing but the function itself.
type HandlerFunc[E Event] func(ctx context.Context, ev E) error

// Handle recovers E from ev and calls f. An event of any other concrete type
// is a routing defect and yields *MisroutedDispatchError.
func (f HandlerFunc[E]) Handle(ctx context.Context, ev Event) error {
	typed, ok := ev.(E)
	if !ok {
		return misrouted[E](ev)
	}
	return f(ctx, typed)
}

// BoundHandler is a handler for event type E that carries one shared,
// read-only context value of type C. Many handlers may point at the same C;
// none of them may mutate it.
type BoundHandler[E Event, C any] struct {
	shared *C
	fn     func(ctx context.Context, ev E, shared *C) error
}

// Bind creates a BoundHandler. shared is captured once here and handed to
// every invocation.
func Bind[E Event, C any](shared *C, fn func(ctx context.Context, ev E, shared *C) error) *BoundHandler[E, C] {
	if shared == nil {
		panic(fmt.Sprintf("event: Bind called with nil %T context", shared))
	}
	return &BoundHandler[E, C]{shared: shared, fn: fn}
}

// Shared returns the bound context value.
func (h *BoundHandler[E, C]) Shared() *C { return h.shared }

// Handle implements Handler.
func (h *BoundHandler[E, C]) Handle(ctx context.Context, ev Event) error {
	typed, ok := ev.(E)
	if !ok {
		return misrouted[E](ev)
	}
	return h.fn(ctx, typed, h.shared)
}

func misrouted[E Event](ev Event) error {
	var want E
	var id string
	if ev != nil {
		id = ev.ID().String()
	}
	return &MisroutedDispatchError{
		EventID: id,
		Want:    fmt.Sprintf("%T", want),
		Got:     fmt.Sprintf("%T", ev),
	}
}
