package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/metrics"
)

// Module is the interface every loadable module implements.
type Module interface {
	// Metadata returns the module's static record. It must be deterministic
	// and free of side effects.
	Metadata() LibraryMetadata

	// Run performs all of the module's registrations against api. The loader
	// calls it once, after Metadata.
	Run(ctx context.Context, api *API) error
}

// Loader drives the entry-point protocol for a set of modules and remembers
// which module ids have already run. Loaded and Count may be called while
// Load is in progress.
type Loader struct {
	mu     sync.RWMutex
	loaded []LibraryMetadata
	seen   map[string]struct{}
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{seen: make(map[string]struct{})}
}

// Load runs each module in order. It stops at the first module whose
// metadata is invalid, whose id was already loaded, or whose Run fails.
func (l *Loader) Load(ctx context.Context, api *API, modules ...Module) error {
	logger := ctxlog.FromContext(ctx)

	for _, mod := range modules {
		meta := mod.Metadata()
		if err := meta.Validate(); err != nil {
			return fmt.Errorf("refusing to load module %T: %w", mod, err)
		}
		if !l.claim(meta.ModID) {
			return fmt.Errorf("module '%s' already loaded; Run must not be called twice", meta.ModID)
		}

		modCtx := ctxlog.With(ctx, "module", meta.ModID)
		logger.Debug("Loading module.", "module", meta.ModID, "version", meta.ModVersion, "author", meta.ModAuthor)
		if err := mod.Run(modCtx, api); err != nil {
			return fmt.Errorf("module '%s' failed to run: %w", meta.ModID, err)
		}

		l.mu.Lock()
		l.loaded = append(l.loaded, meta)
		count := len(l.loaded)
		l.mu.Unlock()
		metrics.ModulesLoaded.Set(float64(count))
		logger.Info("Module loaded.", "module", meta.ModID, "name", meta.DisplayName(), "version", meta.ModVersion)
	}
	return nil
}

// claim reserves id. The id stays claimed even if the module's Run fails.
func (l *Loader) claim(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.seen[id]; dup {
		return false
	}
	l.seen[id] = struct{}{}
	return true
}

// Loaded returns the metadata of successfully loaded modules in load order.
func (l *Loader) Loaded() []LibraryMetadata {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LibraryMetadata, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// Count returns the number of successfully loaded modules.
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.loaded)
}
