package config

import (
	"context"

	"github.com/vk/metagraph/internal/model"
)

// Loader is the interface for a format-specific metagraph reader.
type Loader interface {
	// Load reads the file at path and returns the validated metagraph it
	// describes.
	Load(ctx context.Context, path string) (*model.Metagraph, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*model.Metagraph, error)

// Load calls f(ctx, path).
func (f LoaderFunc) Load(ctx context.Context, path string) (*model.Metagraph, error) {
	return f(ctx, path)
}
