package event

import "fmt"

// MisroutedDispatchError means a handler received an event whose concrete
// type is not the one it was bound to. This is an integration defect; the
// bus aborts the dispatch and returns it.
type MisroutedDispatchError struct {
	EventID string
	Want    string
	Got     string
}

func (e *MisroutedDispatchError) Error() string {
	return fmt.Sprintf("event '%s' misrouted: handler expects %s, got %s", e.EventID, e.Want, e.Got)
}

// HandlerError wraps an error returned by a handler during dispatch.
type HandlerError struct {
	EventID string
	Index   int
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler #%d for event '%s' failed: %v", e.Index, e.EventID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }
