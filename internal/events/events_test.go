package events

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/plugin"
	"github.com/specialistvlad/enginecore/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var coreMeta = plugin.LibraryMetadata{
	ModID:      "engine_core",
	ModAuthor:  "@ign-styly",
	ModName:    "Engine Core External",
	ModVersion: "0.0.1",
}

func TestStartEvent_CloneIndependent(t *testing.T) {
	orig := NewStartEvent([]plugin.LibraryMetadata{coreMeta})
	clone := orig.Clone().(*StartEvent)

	clone.Modules[0].ModName = "changed"
	clone.Cancel()

	assert.Equal(t, "Engine Core External", orig.Modules[0].ModName)
	assert.False(t, orig.IsCancelled())
	assert.Equal(t, StartID, clone.ID())
}

func TestStartEvent_RoundTrip(t *testing.T) {
	in := NewStartEvent([]plugin.LibraryMetadata{coreMeta, {ModID: "other", ModVersion: "1.0.0"}})

	data, err := codec.Encode(codec.MsgPack(), in)
	require.NoError(t, err)

	out := &StartEvent{}
	require.NoError(t, codec.Decode(codec.MsgPack(), data, out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StartID, out.ID())
}

func TestCgrpcEvent_RoundTripSkipsOutput(t *testing.T) {
	in := NewCgrpcEvent("grpc", []byte{1, 2, 3})
	_, _ = in.Output.Write([]byte("ignored"))

	data, err := codec.Encode(codec.MsgPack(), in)
	require.NoError(t, err)

	out := &CgrpcEvent{}
	require.NoError(t, codec.Decode(codec.MsgPack(), data, out))
	if diff := cmp.Diff(in, out, cmpopts.IgnoreFields(CgrpcEvent{}, "Output")); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, out.Output)
}

func TestCgrpcEvent_CloneIndependent(t *testing.T) {
	orig := NewCgrpcEvent("grpc", []byte("req"))
	_, _ = orig.Output.Write([]byte("a"))

	clone := orig.Clone().(*CgrpcEvent)
	clone.Payload[0] = 'X'
	_, _ = clone.Output.Write([]byte("b"))

	assert.Equal(t, []byte("req"), orig.Payload)
	assert.Equal(t, []byte("a"), orig.Output.Bytes())
	assert.Equal(t, []byte("ab"), clone.Output.Bytes())
	assert.Equal(t, 2, clone.Output.Len())
}

func TestRegisterBuiltins(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	bus := event.NewBus(registry.PolicyAppend, event.CancelAdvisory)
	require.NoError(t, RegisterBuiltins(ctx, bus))

	ev, err := bus.NewEvent(CgrpcID)
	require.NoError(t, err)
	_, ok := ev.(*CgrpcEvent)
	assert.True(t, ok)

	require.Error(t, RegisterBuiltins(ctx, bus), "second registration must be rejected")
}
