package config

import (
	"context"
	"fmt"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/model"
)

// Registry maps formats to loaders.
type Registry struct {
	loaders map[Format]Loader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[Format]Loader)}
}

// Register binds a loader to a format, replacing any previous binding.
func (r *Registry) Register(format Format, loader Loader) {
	r.loaders[format] = loader
}

// Lookup returns the loader for path. FormatAuto resolves via DetectFormat.
func (r *Registry) Lookup(format Format, path string) (Loader, Format, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	loader, ok := r.loaders[format]
	if !ok {
		return nil, format, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return loader, format, nil
}

// Load reads path with the loader registered for format.
func (r *Registry) Load(ctx context.Context, format Format, path string) (*model.Metagraph, error) {
	loader, resolved, err := r.Lookup(format, path)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Loading metagraph.", "path", path, "format", string(resolved))
	mg, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return mg, nil
}
