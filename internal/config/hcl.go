package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
)

// hclFile is the gohcl decoding schema for a .hcl configuration file.
type hclFile struct {
	Engine *hclEngine `hcl:"engine,block"`
	Jobs   []*hclJob  `hcl:"job,block"`
	Bridge *hclBridge `hcl:"bridge,block"`
}

type hclEngine struct {
	HandlerPolicy string `hcl:"handler_policy,optional"`
	Cancellation  string `hcl:"cancellation,optional"`
	Codec         string `hcl:"codec,optional"`
	Workers       int    `hcl:"workers,optional"`
}

type hclJob struct {
	Name   string         `hcl:"name,label"`
	Task   string         `hcl:"task"`
	Input  hcl.Expression `hcl:"input,optional"`
	Repeat int            `hcl:"repeat,optional"`
}

type hclBridge struct {
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event,optional"`
	Handler   string `hcl:"handler,optional"`
	Timeout   string `hcl:"timeout,optional"`
}

// HCLLoader reads .hcl configuration files.
type HCLLoader struct{}

// NewHCLLoader creates a new HCL loader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{}
}

// Load implements Loader.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	logger.Debug("Decoded HCL configuration.", "path", path, "jobs", len(raw.Jobs))

	return l.translate(&raw)
}

// translate converts the HCL schema into the format-agnostic model.
func (l *HCLLoader) translate(raw *hclFile) (*Model, error) {
	m := &Model{}
	if raw.Engine != nil {
		m.Engine = Engine{
			HandlerPolicy: raw.Engine.HandlerPolicy,
			Cancellation:  raw.Engine.Cancellation,
			Codec:         raw.Engine.Codec,
			Workers:       raw.Engine.Workers,
		}
	}

	for _, j := range raw.Jobs {
		input, err := evalInput(j.Input)
		if err != nil {
			return nil, fmt.Errorf("job '%s': %w", j.Name, err)
		}
		m.Jobs = append(m.Jobs, &Job{
			Name:   j.Name,
			Task:   j.Task,
			Input:  input,
			Repeat: j.Repeat,
		})
	}

	if b := raw.Bridge; b != nil {
		m.Bridge = &Bridge{
			URL:       b.URL,
			Namespace: b.Namespace,
			Event:     b.Event,
			Handler:   b.Handler,
			Timeout:   b.Timeout,
		}
	}
	return m, nil
}

// evalInput evaluates a job's input expression. Inputs are literal objects;
// no variables or functions are available.
func evalInput(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate input: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("input must be an object, got %s", val.Type().FriendlyName())
	}
	goVal, err := ctyToGo(val)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input: %w", err)
	}
	return goVal.(map[string]any), nil
}
