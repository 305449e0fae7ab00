// Package bridge connects the host to a remote socket.io endpoint and turns
// each message received on a configured event into a CgrpcEvent dispatched
// on the local bus. Whatever the handlers write to the event output is sent
// back on "<event>:reply". Payload bytes are opaque to the bridge.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Dispatcher is the part of the event bus the bridge needs.
type Dispatcher interface {
	Handle(ctx context.Context, id ident.Identifier, ev event.Event) error
}

// Config holds the bridge settings.
type Config struct {
	URL       string
	Namespace string
	Event     string
	// Handler is the default CgrpcEvent.Handler for messages that do not
	// name one.
	Handler string
	// Timeout bounds the initial connection attempt.
	Timeout time.Duration
}

// Reply is the message emitted back after a dispatch.
type Reply struct {
	Handler   string `json:"handler"`
	Output    []byte `json:"output"`
	Cancelled bool   `json:"cancelled"`
}

// Bridge relays socket.io messages into the event bus.
type Bridge struct {
	cfg Config
	bus Dispatcher

	// Dispatches are serialized; an event is handled on one goroutine at a time.
	mu sync.Mutex
}

// New creates a Bridge.
func New(cfg Config, bus Dispatcher) *Bridge {
	return &Bridge{cfg: cfg, bus: bus}
}

// ReplyEvent returns the event name replies are emitted on.
func (b *Bridge) ReplyEvent() string { return b.cfg.Event + ":reply" }

// ErrorEvent returns the event name dispatch failures are emitted on.
func (b *Bridge) ErrorEvent() string { return b.cfg.Event + ":error" }

// HandleMessage converts one socket.io message into a CgrpcEvent, dispatches
// it, and returns the reply to send back.
func (b *Bridge) HandleMessage(ctx context.Context, data ...any) (*Reply, error) {
	ev, err := b.decodeMessage(data)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	err = b.bus.Handle(ctx, events.CgrpcID, ev)
	b.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("dispatch of cgrpc event failed: %w", err)
	}

	return &Reply{
		Handler:   ev.Handler,
		Output:    ev.Output.Bytes(),
		Cancelled: ev.IsCancelled(),
	}, nil
}

// decodeMessage accepts a raw payload ([]byte or string) or an object with
// "handler" and "payload" keys.
func (b *Bridge) decodeMessage(data []any) (*events.CgrpcEvent, error) {
	if len(data) == 0 {
		return nil, errors.New("empty message")
	}

	handler := b.cfg.Handler
	var payload []byte
	switch v := data[0].(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	case map[string]any:
		if h, ok := v["handler"].(string); ok && h != "" {
			handler = h
		}
		switch p := v["payload"].(type) {
		case []byte:
			payload = p
		case string:
			payload = []byte(p)
		case nil:
		default:
			return nil, fmt.Errorf("unsupported payload type %T", p)
		}
	default:
		return nil, fmt.Errorf("unsupported message type %T", v)
	}

	return events.NewCgrpcEvent(handler, payload), nil
}

// Serve connects to the configured endpoint and relays messages until ctx
// is cancelled. It fails if the initial connection cannot be established
// within the configured timeout.
func (b *Bridge) Serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "bridge", "url", b.cfg.URL, "event", b.cfg.Event)

	parsedURL, err := url.Parse(b.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse bridge URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(b.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting bridge socket")
		io.Disconnect()
	}()

	connected := make(chan struct{}, 1)
	failed := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Bridge connected", "namespace", b.cfg.Namespace, "sid", io.Id())
		select {
		case connected <- struct{}{}:
		default:
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case failed <- err:
		default:
		}
	})

	io.On(types.EventName(b.cfg.Event), func(data ...any) {
		reply, err := b.HandleMessage(ctx, data...)
		if err != nil {
			logger.Error("Failed to handle bridged message", "error", err)
			io.Emit(b.ErrorEvent(), err.Error())
			return
		}
		logger.Debug("Relaying reply", "handler", reply.Handler, "bytes", len(reply.Output), "cancelled", reply.Cancelled)
		io.Emit(b.ReplyEvent(), reply)
	})

	io.Connect()

	timeout := b.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-connected:
	case err := <-failed:
		return fmt.Errorf("bridge connection failed: %w", err)
	case <-timer.C:
		return fmt.Errorf("timed out after %v waiting for bridge connection", timeout)
	case <-ctx.Done():
		return nil
	}

	<-ctx.Done()
	logger.Info("Bridge stopping")
	return nil
}
