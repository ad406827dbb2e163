package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/projindex/internal/app"
	"github.com/vk/projindex/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// WorkDir is searched for a default configuration file when --config is
// not given.
var WorkDir = "."

type flagValues struct {
	configPath  string
	projectsDir string
	output      string
	buildDir    string
	hrefPrefix  string
	tolerant    bool
	noJekyll    bool
	logFormat   string
	logLevel    string
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Values come from defaults, then the configuration file, then flags that
// were set explicitly.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var fv flagValues
	ran := false
	cmd := &cobra.Command{
		Use:   "projindex",
		Short: "Generate an HTML index of the projects in a directory.",
		Long: `projindex scans a directory of sub-projects, derives a title for each one
that contains an index.html and writes a single index page linking to them.

Run without arguments to scan ./projects and write ./index.html.
Settings may also come from projindex.hcl or projindex.yaml in the working
directory; flags that are set explicitly win over the file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			return nil
		},
	}
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	defaults := app.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&fv.configPath, "config", "c", "", "Path to a .hcl or .yaml configuration file.")
	flags.StringVar(&fv.projectsDir, "projects-dir", defaults.ProjectsDir, "Directory containing one sub-directory per project.")
	flags.StringVarP(&fv.output, "output", "o", defaults.Output, "Index file to write, relative to --build-dir when set.")
	flags.StringVar(&fv.buildDir, "build-dir", "", "Copy the projects tree here and write the index inside it. Cleared on every run.")
	flags.StringVar(&fv.hrefPrefix, "href-prefix", defaults.HrefPrefix, "Prefix of every project link. Defaults to ./<projects-dir name>/.")
	flags.BoolVar(&fv.tolerant, "tolerant", false, "Render an empty index instead of failing when the projects directory is missing.")
	flags.BoolVar(&fv.noJekyll, "nojekyll", false, "Write a .nojekyll marker next to the index.")
	flags.StringVar(&fv.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&fv.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		slog.Debug("Help requested, exiting.")
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(fv.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(fv.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	configPath := fv.configPath
	if configPath == "" {
		found, err := config.Find(WorkDir)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		configPath = found
	}
	slog.Debug("Configuration file determined.", "path", configPath)

	model, err := app.LoadModel(context.Background(), configPath)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := defaults
	cfg.ApplyModel(model)
	if flags.Changed("projects-dir") {
		cfg.ProjectsDir = fv.projectsDir
	}
	if flags.Changed("output") {
		cfg.Output = fv.output
	}
	if flags.Changed("build-dir") {
		cfg.BuildDir = fv.buildDir
	}
	if flags.Changed("href-prefix") {
		cfg.HrefPrefix = fv.hrefPrefix
	}
	if flags.Changed("tolerant") {
		cfg.Strict = !fv.tolerant
	}
	if flags.Changed("nojekyll") {
		cfg.NoJekyll = fv.noJekyll
	}
	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}
