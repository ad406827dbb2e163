package yamlconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/projindex/internal/config"
	"github.com/vk/projindex/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// fileSchema is the top-level structure of a projindex.yaml file.
type fileSchema struct {
	ProjectsDir *string     `yaml:"projects_dir"`
	Output      *string     `yaml:"output"`
	BuildDir    *string     `yaml:"build_dir"`
	HrefPrefix  *string     `yaml:"href_prefix"`
	Strict      *bool       `yaml:"strict"`
	NoJekyll    *bool       `yaml:"nojekyll"`
	Skip        []string    `yaml:"skip"`
	Page        *pageSchema `yaml:"page"`
}

type pageSchema struct {
	Title     *string `yaml:"title"`
	Heading   *string `yaml:"heading"`
	Intro     *string `yaml:"intro"`
	EmptyText *string `yaml:"empty_text"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes a single YAML document. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading YAML configuration.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	var parsed fileSchema
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	m := &config.Model{
		ProjectsDir: parsed.ProjectsDir,
		Output:      parsed.Output,
		BuildDir:    parsed.BuildDir,
		HrefPrefix:  parsed.HrefPrefix,
		Strict:      parsed.Strict,
		NoJekyll:    parsed.NoJekyll,
		Skip:        parsed.Skip,
		Source:      path,
	}
	if p := parsed.Page; p != nil {
		m.Page = &config.Page{
			Title:     p.Title,
			Heading:   p.Heading,
			Intro:     p.Intro,
			EmptyText: p.EmptyText,
		}
	}

	logger.Debug("YAML configuration loaded.", "path", path)
	return m, nil
}
