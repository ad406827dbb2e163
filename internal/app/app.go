package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/projindex/internal/ctxlog"
	"github.com/vk/projindex/internal/fsutil"
	"github.com/vk/projindex/internal/index"
)

// MarkerFile tells GitHub Pages to serve the build directory as-is.
const MarkerFile = ".nojekyll"

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger writing to outW.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Config returns the application's configuration. This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}

// Run discovers projects, optionally mirrors the projects tree into the
// build directory and writes the index. In strict mode a missing projects
// directory is reported before anything is written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("App.Run method started.", "projects_dir", cfg.ProjectsDir, "output", cfg.OutputPath())

	projects, err := index.Discover(ctx, os.DirFS(cfg.ProjectsDir), index.Options{
		Strict:     cfg.Strict,
		HrefPrefix: cfg.LinkPrefix(),
		Root:       cfg.ProjectsDir,
	})
	if err != nil {
		return err
	}

	if cfg.BuildDir != "" {
		if err := a.propagateAssets(ctx); err != nil {
			return fmt.Errorf("failed to copy projects: %w", err)
		}
	}

	out := cfg.OutputPath()
	if err := index.WriteFile(ctx, out, projects, cfg.Page); err != nil {
		return err
	}

	if cfg.NoJekyll {
		marker := filepath.Join(filepath.Dir(out), MarkerFile)
		if err := os.WriteFile(marker, nil, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", marker, err)
		}
		a.logger.Debug("Marker file written.", "path", marker)
	}

	if len(projects) == 0 {
		a.logger.Warn("No projects found.", "projects_dir", cfg.ProjectsDir)
	}
	a.logger.Info("Generated index.", "projects", len(projects), "path", out)
	return nil
}

// propagateAssets clears the build directory and mirrors the projects tree
// into it. The plan is computed first so a failing walk leaves the previous
// build untouched.
func (a *App) propagateAssets(ctx context.Context) error {
	cfg := a.config
	dest := cfg.AssetDir()

	var ops []fsutil.CopyOp
	src := os.DirFS(cfg.ProjectsDir)
	if info, err := os.Stat(cfg.ProjectsDir); err == nil && info.IsDir() {
		ops, err = fsutil.PlanCopy(ctx, src, fsutil.SkipNames(cfg.Skip...))
		if err != nil {
			return err
		}
	} else {
		a.logger.Warn("Projects directory missing, build directory will hold only the index.", "projects_dir", cfg.ProjectsDir)
	}

	if err := fsutil.ResetDir(cfg.BuildDir); err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if err := fsutil.ApplyCopy(ctx, ops, src, dest); err != nil {
		return err
	}

	a.logger.Info("Projects copied.", "destination", dest, "operations", len(ops))
	return nil
}
