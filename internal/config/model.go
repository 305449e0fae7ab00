package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/registry"
)

// Defaults applied by Normalize.
const (
	DefaultHandlerPolicy = registry.PolicyAppend
	DefaultCancellation  = event.CancelAdvisory
	DefaultCodec         = codec.NameMsgPack
	DefaultWorkers       = 4
	DefaultBridgeEvent   = "cgrpc"
	DefaultBridgeNS      = "/"
	DefaultBridgeTimeout = "10s"
)

// Model is the unified representation of a host configuration file.
type Model struct {
	Engine Engine
	Jobs   []*Job
	Bridge *Bridge
}

// Engine holds host-wide dispatch and execution settings. Empty strings and
// a zero Workers mean "use the default".
type Engine struct {
	HandlerPolicy string
	Cancellation  string
	Codec         string
	Workers       int
}

// Job asks the host to execute a registered task after modules load.
type Job struct {
	Name   string
	Task   string
	Input  map[string]any
	Repeat int
}

// TaskID parses the job's task identifier.
func (j *Job) TaskID() (ident.Identifier, error) {
	return ident.Parse(j.Task)
}

// Bridge configures the optional socket.io bridge that turns remote
// messages into cgrpc events.
type Bridge struct {
	URL       string
	Namespace string
	Event     string
	Handler   string
	Timeout   string
}

// Merge folds other into m. Engine settings may be set by at most one
// source unless the values agree, jobs are appended, and only one source may
// declare a bridge.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	var errs []string
	mergeString := func(field string, dst *string, src string) {
		if src == "" {
			return
		}
		if *dst != "" && *dst != src {
			errs = append(errs, fmt.Sprintf("engine: %s set to both %q and %q", field, *dst, src))
			return
		}
		*dst = src
	}
	mergeString("handler_policy", &m.Engine.HandlerPolicy, other.Engine.HandlerPolicy)
	mergeString("cancellation", &m.Engine.Cancellation, other.Engine.Cancellation)
	mergeString("codec", &m.Engine.Codec, other.Engine.Codec)
	if other.Engine.Workers != 0 {
		if m.Engine.Workers != 0 && m.Engine.Workers != other.Engine.Workers {
			errs = append(errs, fmt.Sprintf("engine: workers set to both %d and %d", m.Engine.Workers, other.Engine.Workers))
		} else {
			m.Engine.Workers = other.Engine.Workers
		}
	}

	m.Jobs = append(m.Jobs, other.Jobs...)

	if other.Bridge != nil {
		if m.Bridge != nil {
			errs = append(errs, "bridge: declared more than once")
		} else {
			m.Bridge = other.Bridge
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("conflicting configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Normalize applies defaults and validates every section, returning all
// problems at once.
func (m *Model) Normalize() error {
	var errs []string

	if m.Engine.HandlerPolicy == "" {
		m.Engine.HandlerPolicy = string(DefaultHandlerPolicy)
	}
	if _, err := registry.ParsePolicy(m.Engine.HandlerPolicy); err != nil {
		errs = append(errs, "engine: "+err.Error())
	}
	if m.Engine.Cancellation == "" {
		m.Engine.Cancellation = string(DefaultCancellation)
	}
	if _, err := event.ParseCancellationPolicy(m.Engine.Cancellation); err != nil {
		errs = append(errs, "engine: "+err.Error())
	}
	if m.Engine.Codec == "" {
		m.Engine.Codec = DefaultCodec
	}
	if _, err := codec.ByName(m.Engine.Codec); err != nil {
		errs = append(errs, "engine: "+err.Error())
	}
	if m.Engine.Workers == 0 {
		m.Engine.Workers = DefaultWorkers
	}
	if m.Engine.Workers < 0 {
		errs = append(errs, fmt.Sprintf("engine: workers must be positive, got %d", m.Engine.Workers))
	}

	names := make(map[string]struct{}, len(m.Jobs))
	for _, j := range m.Jobs {
		if _, dup := names[j.Name]; dup {
			errs = append(errs, fmt.Sprintf("job '%s': declared more than once", j.Name))
		}
		names[j.Name] = struct{}{}
		if _, err := j.TaskID(); err != nil {
			errs = append(errs, fmt.Sprintf("job '%s': %v", j.Name, err))
		}
		if j.Repeat == 0 {
			j.Repeat = 1
		}
		if j.Repeat < 0 {
			errs = append(errs, fmt.Sprintf("job '%s': repeat must be positive, got %d", j.Name, j.Repeat))
		}
	}

	if b := m.Bridge; b != nil {
		if b.URL == "" {
			errs = append(errs, "bridge: url is required")
		}
		if b.Namespace == "" {
			b.Namespace = DefaultBridgeNS
		}
		if b.Event == "" {
			b.Event = DefaultBridgeEvent
		}
		if b.Timeout == "" {
			b.Timeout = DefaultBridgeTimeout
		}
		if b.Handler != "" {
			if _, err := ident.Parse(b.Handler); err != nil {
				errs = append(errs, "bridge: handler: "+err.Error())
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
