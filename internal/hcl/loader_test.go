package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/projindex/internal/config"
	"github.com/vk/projindex/internal/ctxlog"
)

func writeHCL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projindex.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func ptr[T any](v T) *T { return &v }

func TestLoader_FullFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeHCL(t, `
projects_dir = "demos"
output       = "index.html"
build_dir    = "dist"
href_prefix  = "./demos/"
strict       = false
nojekyll     = true
skip         = [".DS_Store", "Thumbs.db"]

page {
  title      = format("%s Projects", env.SITE_NAME)
  heading    = upper(env.SITE_NAME)
  intro      = trimspace("  Pick one:  ")
  empty_text = "Nothing here yet."
}
`)
	loader := &Loader{Environ: func() []string { return []string{"SITE_NAME=Labs", "BROKEN"} }}

	// --- Act ---
	model, err := loader.Load(ctxlog.Discard(context.Background()), path)

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Model{
		ProjectsDir: ptr("demos"),
		Output:      ptr("index.html"),
		BuildDir:    ptr("dist"),
		HrefPrefix:  ptr("./demos/"),
		Strict:      ptr(false),
		NoJekyll:    ptr(true),
		Skip:        []string{".DS_Store", "Thumbs.db"},
		Page: &config.Page{
			Title:     ptr("Labs Projects"),
			Heading:   ptr("LABS"),
			Intro:     ptr("Pick one:"),
			EmptyText: ptr("Nothing here yet."),
		},
		Source: path,
	}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_EmptyFileLeavesEverythingUnset(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, "")
	model, err := NewLoader().Load(ctxlog.Discard(context.Background()), path)

	require.NoError(t, err)
	require.Nil(t, model.ProjectsDir)
	require.Nil(t, model.Strict)
	require.Nil(t, model.Skip)
	require.Nil(t, model.Page)
	require.Equal(t, path, model.Source)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax error", content: "page {\n  title = \"x\"\n", wantErr: "failed to parse HCL file"},
		{name: "unknown attribute", content: `colour = "blue"`, wantErr: "failed to decode HCL file"},
		{name: "wrong type", content: `strict = "sometimes"`, wantErr: "failed to decode HCL file"},
		{name: "unknown variable", content: `output = env.DOES_NOT_EXIST_ANYWHERE`, wantErr: "failed to decode HCL file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeHCL(t, tc.content)
			loader := &Loader{Environ: func() []string { return nil }}

			_, err := loader.Load(ctxlog.Discard(context.Background()), path)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(ctxlog.Discard(context.Background()), filepath.Join(t.TempDir(), "nope.hcl"))
	require.ErrorContains(t, err, "failed to parse HCL file")
}
