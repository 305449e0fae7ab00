package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/enginecore/internal/bridge"
	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/ident"
	"golang.org/x/sync/errgroup"
)

// JobResult is the decoded state of one job execution.
type JobResult struct {
	Job    string
	Run    int
	Task   ident.Identifier
	Output map[string]any
}

// Run executes the host lifecycle: load modules, raise the start event,
// execute configured jobs, then relay bridge traffic until ctx is done when
// a bridge is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer func() {
			if err := a.closeHealthcheckServer(); err != nil {
				a.logger.Error("Failed to close health check server", "error", err)
			}
		}()
	}

	if err := a.LoadModules(ctx); err != nil {
		return fmt.Errorf("failed to load modules: %w", err)
	}

	start := events.NewStartEvent(a.loader.Loaded())
	if err := a.api.EventBus.Handle(ctx, events.StartID, start); err != nil {
		return fmt.Errorf("start event dispatch failed: %w", err)
	}
	if start.IsCancelled() {
		a.logger.Warn("Start event was cancelled by a handler; skipping jobs and bridge.")
		return nil
	}

	if len(a.model.Jobs) > 0 {
		a.logger.Info("🚀 Running jobs...", "jobs", len(a.model.Jobs), "workers", a.model.Engine.Workers)
		results, err := a.RunJobs(ctx)
		if err != nil {
			return fmt.Errorf("job execution failed: %w", err)
		}
		for _, r := range results {
			a.logger.Info("Job finished.", "job", r.Job, "run", r.Run, "task", r.Task.String(), "output", r.Output)
		}
		a.logger.Info("🏁 Jobs finished.")
	} else {
		a.logger.Debug("No jobs configured.")
	}

	if b := a.model.Bridge; b != nil {
		timeout, err := time.ParseDuration(b.Timeout)
		if err != nil {
			a.logger.Warn("Failed to parse bridge timeout, using default 10s", "timeout", b.Timeout, "error", err)
			timeout = 10 * time.Second
		}
		br := bridge.New(bridge.Config{
			URL:       b.URL,
			Namespace: b.Namespace,
			Event:     b.Event,
			Handler:   b.Handler,
			Timeout:   timeout,
		}, a.api.EventBus)
		a.logger.Info("Starting bridge.", "url", b.URL, "event", b.Event)
		if err := br.Serve(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// RunJobs executes every repetition of every configured job, at most
// Engine.Workers at a time. Results are returned in declaration order.
func (a *App) RunJobs(ctx context.Context) ([]JobResult, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	type unit struct {
		name    string
		run     int
		id      ident.Identifier
		payload []byte
	}
	var units []unit
	for _, j := range a.model.Jobs {
		id, err := j.TaskID()
		if err != nil {
			return nil, fmt.Errorf("job '%s': %w", j.Name, err)
		}
		var payload []byte
		if j.Input != nil {
			payload, err = codec.Encode(a.api.Codec, j.Input)
			if err != nil {
				return nil, fmt.Errorf("job '%s': %w", j.Name, err)
			}
		}
		for r := 0; r < j.Repeat; r++ {
			units = append(units, unit{name: j.Name, run: r, id: id, payload: payload})
		}
	}

	results := make([]JobResult, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.model.Engine.Workers)

	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			jobCtx := ctxlog.With(gctx, "job", u.name, "run", u.run)
			out, err := a.api.TaskRegistry.Execute(jobCtx, u.id, u.payload)
			if err != nil {
				return fmt.Errorf("job '%s' run %d: %w", u.name, u.run, err)
			}
			decoded := map[string]any{}
			if err := codec.Decode(a.api.Codec, out, &decoded); err != nil {
				return fmt.Errorf("job '%s' run %d: %w", u.name, u.run, err)
			}
			results[i] = JobResult{Job: u.name, Run: u.run, Task: u.id, Output: decoded}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func idStrings(ids []ident.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
