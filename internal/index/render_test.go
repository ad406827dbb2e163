package index

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/projindex/internal/ctxlog"
)

func render(t *testing.T, list ProjectList, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, list, page))
	return buf.String()
}

func TestRender_ListsEntriesInOrder(t *testing.T) {
	t.Parallel()

	list := ProjectList{
		NewEntry("alpha", "Alpha Demo", DefaultHrefPrefix),
		NewEntry("beta", "Beta", DefaultHrefPrefix),
	}

	out := render(t, list, DefaultPage())

	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, "<title>Demo Projects</title>")
	require.Contains(t, out, "<h1>Demo Projects</h1>")
	require.Contains(t, out, "<p>Select a project:</p>")

	alpha := `<li><a href="./projects/alpha/index.html">Alpha Demo</a></li>`
	beta := `<li><a href="./projects/beta/index.html">Beta</a></li>`
	require.Contains(t, out, alpha)
	require.Contains(t, out, beta)
	require.Less(t, strings.Index(out, alpha), strings.Index(out, beta))
	require.NotContains(t, out, "No projects found.")
}

func TestRender_EmptyListHasSinglePlaceholder(t *testing.T) {
	t.Parallel()

	out := render(t, ProjectList{}, DefaultPage())

	require.Equal(t, 1, strings.Count(out, "<li>"))
	require.Contains(t, out, "<li>No projects found.</li>")
	require.NotContains(t, out, "<a ")
	require.NotContains(t, out, "<ul>\n  </ul>")
}

func TestRender_EscapesTitles(t *testing.T) {
	t.Parallel()

	list := ProjectList{NewEntry("x", `Tom & "Jerry" <script>`, DefaultHrefPrefix)}

	out := render(t, list, DefaultPage())

	assert.Contains(t, out, "Tom &amp; &#34;Jerry&#34; &lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `"Jerry"`)
}

func TestRender_CustomPageText(t *testing.T) {
	t.Parallel()

	page := Page{Title: "Labs <2026>", Heading: "Our Labs", EmptyText: "Nothing yet."}

	out := render(t, nil, page)

	require.Contains(t, out, "<title>Labs &lt;2026&gt;</title>")
	require.Contains(t, out, "<h1>Our Labs</h1>")
	require.NotContains(t, out, "<p>")
	require.Contains(t, out, "<li>Nothing yet.</li>")
}

func TestRender_IsDeterministic(t *testing.T) {
	t.Parallel()

	list := ProjectList{NewEntry("alpha", "Alpha", DefaultHrefPrefix)}
	require.Equal(t, render(t, list, DefaultPage()), render(t, list, DefaultPage()))
}

func TestWriteFile_OverwritesAndCreatesParents(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	path := filepath.Join(t.TempDir(), "site", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale ", 4096)), 0o644))

	list := ProjectList{NewEntry("alpha", "Alpha", DefaultHrefPrefix)}
	require.NoError(t, WriteFile(ctx, path, list, DefaultPage()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, render(t, list, DefaultPage()), string(got))

	nested := filepath.Join(t.TempDir(), "a", "b", "index.html")
	require.NoError(t, WriteFile(ctx, nested, nil, DefaultPage()))
	require.FileExists(t, nested)
}
