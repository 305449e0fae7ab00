// Package event defines the event and handler contracts and the in-process
// Bus that dispatches events to handlers by identifier.
//
// # Events
//
// An Event is a cancellable, identified message. Concrete events embed Base
// for the identifier and cancellation flag and add their own payload fields.
// Handlers receive the event as the Event interface and recover the concrete
// type with a type assertion; HandlerFunc and Bind do this for them.
//
// # Dispatch
//
// Bus.Handle invokes every handler registered for an identifier in
// registration order, passing the same event pointer to each, on the calling
// goroutine. Cancellation is advisory by default: the flag is visible to
// later handlers and to the raiser, but every handler still runs. With
// CancelStop the bus checks the flag before each invocation and stops early.
//
// # Thread-Safety
//
// Registration and lookup are safe for concurrent use. An event instance is
// owned by exactly one dispatch at a time and is not synchronized.
package event
