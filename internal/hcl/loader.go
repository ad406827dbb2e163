package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/projindex/internal/config"
	"github.com/vk/projindex/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	// Environ supplies the `env` variable. Defaults to os.Environ.
	Environ func() []string
}

// NewLoader creates a new HCL loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load parses a single HCL file and translates it into the agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL configuration.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed fileSchema
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := translate(&parsed)
	model.Source = path
	logger.Debug("HCL configuration loaded.", "path", path)
	return model, nil
}

// evalContext exposes the environment and string helpers to expressions.
func (l *Loader) evalContext() *hcl.EvalContext {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	vars := make(map[string]cty.Value)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"title":     stdlib.TitleFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
		},
	}
}

// translate converts the HCL-specific schema into the agnostic model.
func translate(s *fileSchema) *config.Model {
	m := &config.Model{
		ProjectsDir: s.ProjectsDir,
		Output:      s.Output,
		BuildDir:    s.BuildDir,
		HrefPrefix:  s.HrefPrefix,
		Strict:      s.Strict,
		NoJekyll:    s.NoJekyll,
		Skip:        s.Skip,
	}
	if s.Page != nil {
		m.Page = &config.Page{
			Title:     s.Page.Title,
			Heading:   s.Page.Heading,
			Intro:     s.Page.Intro,
			EmptyText: s.Page.EmptyText,
		}
	}
	return m
}
