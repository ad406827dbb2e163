package app

import (
	"context"
	"fmt"

	"github.com/vk/projindex/internal/config"
	"github.com/vk/projindex/internal/ctxlog"
	"github.com/vk/projindex/internal/hcl"
	"github.com/vk/projindex/internal/yamlconf"
)

// LoaderFor returns the config.Loader matching the file's extension.
func LoaderFor(path string) (config.Loader, error) {
	format, err := config.FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	switch format {
	case config.FormatHCL:
		return hcl.NewLoader(), nil
	case config.FormatYAML:
		return yamlconf.NewLoader(), nil
	}
	return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, path)
}

// LoadModel reads the configuration file at path. An empty path yields an
// empty model so callers can always overlay the result.
func LoadModel(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No configuration file, using defaults.")
		return config.Empty(), nil
	}

	loader, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	model, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "path", path)
	return model, nil
}
