package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/projindex/internal/config"
	"github.com/vk/projindex/internal/fsutil"
	"github.com/vk/projindex/internal/index"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectsDir string // scanned for project folders
	Output      string // index file, relative to BuildDir when that is set
	BuildDir    string // empty disables asset propagation
	HrefPrefix  string // empty derives "./<base of ProjectsDir>/"
	Strict      bool
	NoJekyll    bool
	Skip        []string
	Page        index.Page

	LogFormat string
	LogLevel  string
}

// DefaultConfig reproduces the behaviour of running with no arguments:
// scan ./projects and write ./index.html, failing if the directory is absent.
func DefaultConfig() Config {
	return Config{
		ProjectsDir: "projects",
		Output:      "index.html",
		Strict:      true,
		Skip:        append([]string(nil), fsutil.DefaultSkipNames...),
		Page:        index.DefaultPage(),
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

// ApplyModel overlays every value the configuration file set.
func (c *Config) ApplyModel(m *config.Model) {
	if m == nil {
		return
	}
	setString(&c.ProjectsDir, m.ProjectsDir)
	setString(&c.Output, m.Output)
	setString(&c.BuildDir, m.BuildDir)
	setString(&c.HrefPrefix, m.HrefPrefix)
	if m.Strict != nil {
		c.Strict = *m.Strict
	}
	if m.NoJekyll != nil {
		c.NoJekyll = *m.NoJekyll
	}
	if m.Skip != nil {
		c.Skip = append([]string(nil), m.Skip...)
	}
	if p := m.Page; p != nil {
		setString(&c.Page.Title, p.Title)
		setString(&c.Page.Heading, p.Heading)
		setString(&c.Page.Intro, p.Intro)
		setString(&c.Page.EmptyText, p.EmptyText)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// OutputPath is where the index document is written.
func (c *Config) OutputPath() string {
	if c.BuildDir == "" {
		return c.Output
	}
	return filepath.Join(c.BuildDir, c.Output)
}

// LinkPrefix is prepended to every project link. By default links are
// relative to the directory the index is written to and point at the
// projects tree as it is served: the mirrored copy when BuildDir is set,
// otherwise ProjectsDir itself.
func (c *Config) LinkPrefix() string {
	if c.HrefPrefix != "" {
		return c.HrefPrefix
	}

	served := c.ProjectsDir
	if c.BuildDir != "" {
		served = c.AssetDir()
	}
	rel, err := relPath(filepath.Dir(c.OutputPath()), served)
	if err != nil {
		return "./" + filepath.Base(filepath.Clean(c.ProjectsDir)) + "/"
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == ".":
		return "./"
	case rel == ".." || strings.HasPrefix(rel, "../"):
		return rel + "/"
	default:
		return "./" + rel + "/"
	}
}

func relPath(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return filepath.Rel(absBase, absTarget)
}

// AssetDir is where the projects tree is mirrored, or "" when disabled.
func (c *Config) AssetDir() string {
	if c.BuildDir == "" {
		return ""
	}
	return filepath.Join(c.BuildDir, filepath.Base(filepath.Clean(c.ProjectsDir)))
}

// NewConfig validates cfg and returns a copy ready for NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectsDir == "" {
		return nil, errors.New("ProjectsDir is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		return nil, errors.New("Output is a required configuration field and cannot be empty")
	}
	if strings.HasSuffix(cfg.Output, "/") || strings.HasSuffix(cfg.Output, string(filepath.Separator)) {
		return nil, fmt.Errorf("Output must name a file, got %q", cfg.Output)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.BuildDir != "" {
		overlap, err := overlaps(cfg.BuildDir, cfg.ProjectsDir)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, fmt.Errorf("BuildDir %q and ProjectsDir %q must not contain one another", cfg.BuildDir, cfg.ProjectsDir)
		}
	}

	cfg.Skip = append([]string(nil), cfg.Skip...)
	return &cfg, nil
}

// overlaps reports whether either directory is the other or lies inside it.
// The build directory is wiped on every run, so it must never hold sources.
func overlaps(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return within(absA, absB) || within(absB, absA), nil
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
