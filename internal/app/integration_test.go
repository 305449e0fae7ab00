package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/plugin"
	"github.com/specialistvlad/enginecore/internal/registry"
	"github.com/specialistvlad/enginecore/internal/testutil"
	"github.com/specialistvlad/enginecore/modules/enginecore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_JobsRespectWorkerLimit(t *testing.T) {
	tracker := testutil.NewTracker(20 * time.Millisecond)
	mod := testutil.NewSimpleModule("tracked", func(ctx context.Context, api *plugin.API) error {
		return api.TaskRegistry.Register(ctx, tracker.Template(), testutil.TrackedID)
	})

	result := testutil.RunIntegrationTest(t, "tracked.hcl", `
engine {
  workers = 2
}

job "tracked" {
  task   = "testutil:tracked"
  input  = { tag = "p" }
  repeat = 6
}
`, mod)

	require.NoError(t, result.Err)
	assert.Equal(t, 1, mod.Runs)
	assert.Equal(t, 6, tracker.Runs())
	assert.LessOrEqual(t, tracker.Peak(), 2)
	testutil.AssertLogged(t, result, "Job finished.", "job=tracked")
}

func TestIntegration_StopCancellationSkipsJobs(t *testing.T) {
	tracker := testutil.NewTracker(0)
	var laterCalled bool
	mod := testutil.NewSimpleModule("canceller", func(ctx context.Context, api *plugin.API) error {
		if err := api.TaskRegistry.Register(ctx, tracker.Template(), testutil.TrackedID); err != nil {
			return err
		}
		cancel := event.HandlerFunc[*events.StartEvent](func(_ context.Context, ev *events.StartEvent) error {
			ev.Cancel()
			return nil
		})
		later := event.HandlerFunc[*events.StartEvent](func(_ context.Context, _ *events.StartEvent) error {
			laterCalled = true
			return nil
		})
		if err := api.EventBus.RegisterHandler(ctx, cancel, events.StartID); err != nil {
			return err
		}
		return api.EventBus.RegisterHandler(ctx, later, events.StartID)
	})

	result := testutil.RunIntegrationTest(t, "stop.yaml", `
engine:
  cancellation: stop
jobs:
  - name: never
    task: testutil:tracked
`, mod)

	require.NoError(t, result.Err)
	assert.False(t, laterCalled)
	assert.Zero(t, tracker.Runs())
	testutil.AssertLogged(t, result, "Start event was cancelled")
}

func TestIntegration_DuplicateModuleRejected(t *testing.T) {
	result := testutil.RunIntegrationTest(t, "", "", &enginecore.Module{}, &enginecore.Module{})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "already loaded")
	assert.Equal(t, 1, testutil.CountLogged(result, "Custom Event"))
}

func TestIntegration_RejectPolicyFailsSecondHandler(t *testing.T) {
	id := ident.ID("dup", "event")
	mod := testutil.NewSimpleModule("dup", func(ctx context.Context, api *plugin.API) error {
		h := event.HandlerFunc[*events.StartEvent](func(context.Context, *events.StartEvent) error { return nil })
		if err := api.EventBus.RegisterHandler(ctx, h, id); err != nil {
			return err
		}
		return api.EventBus.RegisterHandler(ctx, h, id)
	})

	result := testutil.RunIntegrationTest(t, "reject.hcl", `
engine {
  handler_policy = "reject"
}
`, mod)

	require.Error(t, result.Err)
	var dupErr *registry.DuplicateRegistrationError
	require.True(t, errors.As(result.Err, &dupErr))
	assert.Equal(t, id, dupErr.ID)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	result := testutil.RunIntegrationTest(t, "broken.hcl", `engine {`)

	require.Error(t, result.Err)
	assert.Nil(t, result.App)
	assert.Contains(t, result.Err.Error(), "application startup failed")
}
