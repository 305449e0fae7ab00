package events

import (
	"bytes"
	"sync"

	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/ident"
)

// CgrpcID identifies events carrying an opaque remote request payload.
var CgrpcID = ident.ID("core", "cgrpc_event")

// CgrpcEvent carries an opaque request payload for a named remote handler.
// Handlers write their response into Output; the raiser reads it after the
// dispatch returns.
type CgrpcEvent struct {
	event.Base
	Handler string  `msgpack:"handler" cbor:"handler"`
	Payload []byte  `msgpack:"payload" cbor:"payload"`
	Output  *Output `msgpack:"-" cbor:"-"`
}

// NewCgrpcEvent creates a CgrpcEvent with an empty output buffer.
func NewCgrpcEvent(handler string, payload []byte) *CgrpcEvent {
	return &CgrpcEvent{
		Base:    event.NewBase(CgrpcID),
		Handler: handler,
		Payload: payload,
		Output:  &Output{},
	}
}

// Clone copies the payload and gives the clone its own output buffer
// holding a copy of the current output.
func (e *CgrpcEvent) Clone() event.Event {
	c := *e
	c.Payload = bytes.Clone(e.Payload)
	c.Output = &Output{}
	if e.Output != nil {
		c.Output.Write(e.Output.Bytes())
	}
	return &c
}

// Output is a byte buffer safe for concurrent appends and reads.
type Output struct {
	mu  sync.RWMutex
	buf []byte
}

// Write appends p.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.buf = append(o.buf, p...)
	return len(p), nil
}

// Bytes returns a copy of the accumulated output.
func (o *Output) Bytes() []byte {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return bytes.Clone(o.buf)
}

// Len returns the number of bytes written so far.
func (o *Output) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.buf)
}
