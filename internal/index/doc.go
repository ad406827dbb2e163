// Package index discovers project folders, derives a display title for each
// and renders the HTML index page that links to them.
//
// Discovery works on an fs.FS rooted at the projects directory, so callers
// pass os.DirFS in production and an in-memory tree in tests.
package index
