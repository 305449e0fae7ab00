package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

// recorder returns a handler that appends name to the event's Seen list and
// records whether the event was already cancelled when it ran.
func recorder(name string, cancel bool, observed map[string]bool) Handler {
	return HandlerFunc[*pingEvent](func(ctx context.Context, ev *pingEvent) error {
		observed[name] = ev.IsCancelled()
		ev.Seen = append(ev.Seen, name)
		ev.Count++
		if cancel {
			ev.Cancel()
		}
		return nil
	})
}

func TestHandle_RegistrationOrder(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	observed := map[string]bool{}

	for i := 1; i <= 5; i++ {
		require.NoError(t, bus.RegisterHandler(ctx, recorder(fmt.Sprintf("h%d", i), false, observed), pingID))
	}

	ev := newPing()
	require.NoError(t, bus.Handle(ctx, pingID, ev))
	assert.Equal(t, []string{"h1", "h2", "h3", "h4", "h5"}, ev.Seen)
	assert.Equal(t, 5, ev.Count, "every handler sees the same event instance")
}

func TestHandle_AdvisoryCancellationRunsAll(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	observed := map[string]bool{}

	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, observed), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h2", true, observed), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h3", false, observed), pingID))

	ev := newPing()
	require.NoError(t, bus.Handle(ctx, pingID, ev))

	assert.Equal(t, []string{"h1", "h2", "h3"}, ev.Seen)
	assert.False(t, observed["h1"])
	assert.False(t, observed["h2"])
	assert.True(t, observed["h3"], "later handlers observe an earlier cancellation")
	assert.True(t, ev.IsCancelled(), "raiser observes the cancellation")
}

func TestHandle_StopCancellationShortCircuits(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelStop)
	observed := map[string]bool{}

	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", true, observed), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h2", false, observed), pingID))

	ev := newPing()
	require.NoError(t, bus.Handle(ctx, pingID, ev))
	assert.Equal(t, []string{"h1"}, ev.Seen)
	assert.True(t, ev.IsCancelled())
}

func TestHandle_StopPolicyPreCancelledEvent(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelStop)
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, map[string]bool{}), pingID))

	ev := newPing()
	ev.Cancel()
	require.NoError(t, bus.Handle(ctx, pingID, ev))
	assert.Empty(t, ev.Seen)
}

func TestHandle_NoHandlers(t *testing.T) {
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	require.NoError(t, bus.Handle(testCtx(), pingID, newPing()))
}

func TestHandle_NilEvent(t *testing.T) {
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	require.Error(t, bus.Handle(testCtx(), pingID, nil))
}

func TestHandle_HandlerErrorAborts(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	boom := errors.New("boom")
	observed := map[string]bool{}

	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, observed), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, HandlerFunc[*pingEvent](func(ctx context.Context, ev *pingEvent) error {
		return boom
	}), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h3", false, observed), pingID))

	ev := newPing()
	err := bus.Handle(ctx, pingID, ev)
	require.ErrorIs(t, err, boom)

	var hErr *HandlerError
	require.ErrorAs(t, err, &hErr)
	assert.Equal(t, 1, hErr.Index)
	assert.Equal(t, []string{"h1"}, ev.Seen)
}

func TestHandle_MisroutedPropagates(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, map[string]bool{}), pingID))

	err := bus.Handle(ctx, pingID, &pongEvent{Base: NewBase(pingID)})
	var misErr *MisroutedDispatchError
	require.ErrorAs(t, err, &misErr)
}

func TestRegisterHandler_RejectPolicy(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyReject, CancelAdvisory)
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, map[string]bool{}), pingID))

	err := bus.RegisterHandler(ctx, recorder("h2", false, map[string]bool{}), pingID)
	var dupErr *registry.DuplicateRegistrationError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "handler", dupErr.Kind)
	assert.Len(t, bus.Handlers(pingID), 1)
}

func TestRegisterHandler_OverwritePolicy(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyOverwrite, CancelAdvisory)
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", false, map[string]bool{}), pingID))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h2", false, map[string]bool{}), pingID))

	ev := newPing()
	require.NoError(t, bus.Handle(ctx, pingID, ev))
	assert.Equal(t, []string{"h2"}, ev.Seen)
}

func TestRegisterHandler_Nil(t *testing.T) {
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	require.Error(t, bus.RegisterHandler(testCtx(), nil, pingID))
}

func TestRaise_ClonesTemplate(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	tmpl := newPing()
	require.NoError(t, bus.RegisterEvent(ctx, tmpl))
	require.NoError(t, bus.RegisterHandler(ctx, recorder("h1", true, map[string]bool{}), pingID))

	ev, err := bus.Raise(ctx, pingID)
	require.NoError(t, err)
	assert.True(t, ev.IsCancelled())
	assert.Equal(t, []string{"h1"}, ev.(*pingEvent).Seen)

	assert.False(t, tmpl.IsCancelled(), "template must be untouched")
	assert.Empty(t, tmpl.Seen)
	assert.Equal(t, []ident.Identifier{pingID}, bus.EventIDs())
}

func TestRegisterEvent_Duplicate(t *testing.T) {
	ctx := testCtx()
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	require.NoError(t, bus.RegisterEvent(ctx, newPing()))

	var dupErr *registry.DuplicateRegistrationError
	require.ErrorAs(t, bus.RegisterEvent(ctx, newPing()), &dupErr)
}

func TestRaise_Unknown(t *testing.T) {
	bus := NewBus(registry.PolicyAppend, CancelAdvisory)
	_, err := bus.Raise(testCtx(), pingID)
	require.Error(t, err)
}

func TestParseCancellationPolicy(t *testing.T) {
	p, err := ParseCancellationPolicy("STOP")
	require.NoError(t, err)
	assert.Equal(t, CancelStop, p)

	_, err = ParseCancellationPolicy("halt")
	require.Error(t, err)
}
