package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Engine struct {
		HandlerPolicy string `yaml:"handler_policy"`
		Cancellation  string `yaml:"cancellation"`
		Codec         string `yaml:"codec"`
		Workers       int    `yaml:"workers"`
	} `yaml:"engine"`
	Jobs []struct {
		Name   string         `yaml:"name"`
		Task   string         `yaml:"task"`
		Input  map[string]any `yaml:"input"`
		Repeat int            `yaml:"repeat"`
	} `yaml:"jobs"`
	Bridge *struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
		Event     string `yaml:"event"`
		Handler   string `yaml:"handler"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"bridge"`
}

// YAMLLoader reads .yaml and .yml configuration files.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load implements Loader. Unknown keys are rejected.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Decoded YAML configuration.", "path", path, "jobs", len(raw.Jobs))

	m := &Model{
		Engine: Engine{
			HandlerPolicy: raw.Engine.HandlerPolicy,
			Cancellation:  raw.Engine.Cancellation,
			Codec:         raw.Engine.Codec,
			Workers:       raw.Engine.Workers,
		},
	}
	for _, j := range raw.Jobs {
		m.Jobs = append(m.Jobs, &Job{Name: j.Name, Task: j.Task, Input: j.Input, Repeat: j.Repeat})
	}
	if b := raw.Bridge; b != nil {
		m.Bridge = &Bridge{URL: b.URL, Namespace: b.Namespace, Event: b.Event, Handler: b.Handler, Timeout: b.Timeout}
	}
	return m, nil
}
