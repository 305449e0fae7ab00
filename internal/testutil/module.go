package testutil

import (
	"context"

	"github.com/specialistvlad/enginecore/internal/plugin"
)

// SimpleModule is a test helper for creating a mock module whose entry
// point is an arbitrary function.
type SimpleModule struct {
	Meta  plugin.LibraryMetadata
	RunFn func(ctx context.Context, api *plugin.API) error

	Runs int
}

// NewSimpleModule returns a module with valid metadata under id.
func NewSimpleModule(id string, run func(ctx context.Context, api *plugin.API) error) *SimpleModule {
	return &SimpleModule{
		Meta: plugin.LibraryMetadata{
			ModID:      id,
			ModAuthor:  "test",
			ModName:    id,
			ModVersion: "0.1.0",
		},
		RunFn: run,
	}
}

// Metadata implements plugin.Module.
func (m *SimpleModule) Metadata() plugin.LibraryMetadata { return m.Meta }

// Run implements plugin.Module.
func (m *SimpleModule) Run(ctx context.Context, api *plugin.API) error {
	m.Runs++
	if m.RunFn == nil {
		return nil
	}
	return m.RunFn(ctx, api)
}
