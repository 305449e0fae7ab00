package task

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/metrics"
	"github.com/specialistvlad/enginecore/internal/registry"
)

// Registry maps task identifiers to registered templates. A second
// registration under a claimed identifier is always rejected. Payloads are
// decoded and results encoded with the registry's codec.
type Registry struct {
	templates *registry.Registry[Task]
	codec     codec.Codec
}

// NewRegistry creates an empty task registry that serializes with c.
func NewRegistry(c codec.Codec) *Registry {
	if c == nil {
		panic("task: NewRegistry called with nil codec")
	}
	return &Registry{
		templates: registry.New[Task]("task", registry.PolicyReject),
		codec:     c,
	}
}

// Codec returns the codec payloads and results are serialized with.
func (r *Registry) Codec() codec.Codec { return r.codec }

// Register stores template under id. The template's own ID() must match id.
func (r *Registry) Register(ctx context.Context, template Task, id ident.Identifier) error {
	if template == nil {
		return fmt.Errorf("cannot register nil task under '%s'", id)
	}
	if got := template.ID(); got != id {
		return fmt.Errorf("task %T reports identifier '%s' but is registered as '%s'", template, got, id)
	}
	return r.templates.Register(ctx, id, template)
}

// Template returns the registered template for id. Callers must Clone it
// before mutating.
func (r *Registry) Template(id ident.Identifier) (Task, bool) {
	return r.templates.First(id)
}

// IDs lists registered task identifiers in sorted order.
func (r *Registry) IDs() []ident.Identifier {
	return r.templates.Keys()
}

// Instantiate produces a fresh task for one execution: a clone of the
// template, or, when payload is non-empty, the template's decoding of it.
func (r *Registry) Instantiate(id ident.Identifier, payload []byte) (Task, error) {
	tmpl, ok := r.Template(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if len(payload) == 0 {
		return tmpl.Clone(), nil
	}
	t, err := tmpl.FromBytes(r.codec, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload for task '%s': %w", id, err)
	}
	if got := t.ID(); got != id {
		return nil, fmt.Errorf("decoded task reports identifier '%s', expected '%s'", got, id)
	}
	return t, nil
}

// Execute instantiates the task, runs it, and returns its serialized state
// after execution.
func (r *Registry) Execute(ctx context.Context, id ident.Identifier, payload []byte) ([]byte, error) {
	logger := ctxlog.FromContext(ctx).With("task", id.String())

	t, err := r.Instantiate(id, payload)
	if err != nil {
		metrics.TaskExecutionsTotal.WithLabelValues(id.String(), metrics.OutcomeError).Inc()
		return nil, err
	}

	logger.Debug("Running task.", "codec", r.codec.Name())
	start := time.Now()
	t.RunCPU()
	elapsed := time.Since(start)
	metrics.TaskExecutionDuration.WithLabelValues(id.String()).Observe(elapsed.Seconds())

	out, err := t.ToBytes(r.codec)
	if err != nil {
		metrics.TaskExecutionsTotal.WithLabelValues(id.String(), metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("failed to encode result of task '%s': %w", id, err)
	}
	metrics.TaskExecutionsTotal.WithLabelValues(id.String(), metrics.OutcomeOK).Inc()
	logger.Debug("Task finished.", "duration", elapsed, "result_bytes", len(out))
	return out, nil
}

// NotFoundError is returned when no template is registered for an identifier.
type NotFoundError struct {
	ID ident.Identifier
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no task registered under '%s'", e.ID)
}
