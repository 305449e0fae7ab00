package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/fsutil"
)

// Loader reads one configuration file into the format-agnostic Model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// LoaderFor returns the loader matching the file's extension.
func LoaderFor(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return NewHCLLoader(), nil
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported config file %q: expected .hcl, .yaml or .yml", path)
	}
}

// LoadFile loads, normalizes and validates the configuration at path. An
// empty path yields a default Model. A directory path loads every .hcl,
// .yaml and .yml file below it in lexical order and merges them.
func LoadFile(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	m := &Model{}
	if path != "" {
		files, err := configFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			loader, err := LoaderFor(file)
			if err != nil {
				return nil, err
			}
			logger.Debug("Loading configuration file.", "path", file, "loader", fmt.Sprintf("%T", loader))
			part, err := loader.Load(ctx, file)
			if err != nil {
				return nil, err
			}
			if err := m.Merge(part); err != nil {
				return nil, fmt.Errorf("merging %s: %w", file, err)
			}
		}
	}

	if err := m.Normalize(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "jobs", len(m.Jobs), "bridge", m.Bridge != nil)
	return m, nil
}

// configFiles expands path into the list of files to load.
func configFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := fsutil.FindFiles(path, ".hcl", ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to scan config directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl, .yaml or .yml files found in %s", path)
	}
	return files, nil
}
