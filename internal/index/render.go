package index

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/projindex/internal/ctxlog"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Page holds the fixed text of the generated document.
type Page struct {
	Title     string
	Heading   string
	Intro     string
	EmptyText string
}

// DefaultPage returns the wording used when nothing is configured.
func DefaultPage() Page {
	return Page{
		Title:     "Demo Projects",
		Heading:   "Demo Projects",
		Intro:     "Select a project:",
		EmptyText: "No projects found.",
	}
}

type pageData struct {
	Page     Page
	Projects ProjectList
}

// Render writes the index document for list to w. All text is HTML-escaped
// and an empty list renders a single placeholder item.
func Render(w io.Writer, list ProjectList, page Page) error {
	if err := pageTemplate.Execute(w, pageData{Page: page, Projects: list}); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

// WriteFile renders the document and replaces the file at path with it,
// creating parent directories as needed.
func WriteFile(ctx context.Context, path string, list ProjectList, page Page) error {
	logger := ctxlog.FromContext(ctx)

	var buf bytes.Buffer
	if err := Render(&buf, list, page); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write index %s: %w", path, err)
	}

	logger.Debug("Index written.", "path", path, "bytes", buf.Len())
	return nil
}
