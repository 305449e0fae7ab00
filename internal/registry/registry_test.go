package registry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestRegister_RejectPolicy(t *testing.T) {
	ctx := testCtx()
	r := New[string]("task", PolicyReject)
	id := ident.ID("engine_core", "fib")

	require.NoError(t, r.Register(ctx, id, "first"))
	err := r.Register(ctx, id, "second")
	require.Error(t, err)

	var dupErr *DuplicateRegistrationError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "task", dupErr.Kind)
	assert.Equal(t, id, dupErr.ID)
	assert.Contains(t, err.Error(), "engine_core:fib")

	got, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, []string{"first"}, got, "a rejected registration must not overwrite")
}

func TestRegister_OverwritePolicy(t *testing.T) {
	ctx := testCtx()
	r := New[string]("handler", PolicyOverwrite)
	id := ident.ID("core", "start_event")

	require.NoError(t, r.Register(ctx, id, "first"))
	require.NoError(t, r.Register(ctx, id, "second"))

	got, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, []string{"second"}, got)
}

func TestRegister_AppendPolicy(t *testing.T) {
	ctx := testCtx()
	r := New[string]("handler", PolicyAppend)
	id := ident.ID("core", "start_event")

	for _, v := range []string{"h1", "h2", "h3"} {
		require.NoError(t, r.Register(ctx, id, v))
	}

	got, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, []string{"h1", "h2", "h3"}, got)

	first, ok := r.First(id)
	require.True(t, ok)
	assert.Equal(t, "h1", first)
}

func TestRegister_InvalidIdentifier(t *testing.T) {
	r := New[int]("task", PolicyReject)
	err := r.Register(testCtx(), ident.ID("", "fib"), 1)
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestLookup_ReturnsCopy(t *testing.T) {
	ctx := testCtx()
	r := New[string]("handler", PolicyAppend)
	id := ident.ID("a", "b")
	require.NoError(t, r.Register(ctx, id, "x"))

	got, _ := r.Lookup(id)
	got[0] = "mutated"

	again, _ := r.Lookup(id)
	assert.Equal(t, []string{"x"}, again)
}

func TestLookup_Missing(t *testing.T) {
	r := New[string]("handler", PolicyAppend)
	got, ok := r.Lookup(ident.ID("a", "b"))
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok = r.First(ident.ID("a", "b"))
	assert.False(t, ok)
}

func TestKeys_Sorted(t *testing.T) {
	ctx := testCtx()
	r := New[int]("task", PolicyReject)
	require.NoError(t, r.Register(ctx, ident.ID("z", "1"), 1))
	require.NoError(t, r.Register(ctx, ident.ID("a", "2"), 2))
	require.NoError(t, r.Register(ctx, ident.ID("a", "1"), 3))

	assert.Equal(t, []ident.Identifier{
		ident.ID("a", "1"),
		ident.ID("a", "2"),
		ident.ID("z", "1"),
	}, r.Keys())
	assert.Equal(t, 3, r.Len())
}

func TestRegister_ConcurrentRejectHasOneWinner(t *testing.T) {
	ctx := testCtx()
	r := New[int]("task", PolicyReject)
	id := ident.ID("engine_core", "fib")

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- r.Register(ctx, id, i)
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Append ")
	require.NoError(t, err)
	assert.Equal(t, PolicyAppend, p)

	_, err = ParsePolicy("merge")
	require.Error(t, err)
}

func TestNew_InvalidPolicyPanics(t *testing.T) {
	require.Panics(t, func() { New[int]("task", Policy("merge")) })
}
