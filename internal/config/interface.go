package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// ErrUnsupportedFormat is returned by FormatOf for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// DefaultFiles are looked up, in order, in the working directory when no
// configuration path is given.
var DefaultFiles = []string{"projindex.hcl", "projindex.yaml", "projindex.yml"}

// Format names a configuration syntax.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
)

// FormatOf infers the syntax from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Find returns the first of DefaultFiles present in dir, or "" if none is.
func Find(dir string) (string, error) {
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}
