package index

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// PageFile is the file a folder must contain to be listed. It is both the
// link target and the source of the extracted title.
const PageFile = "index.html"

// DefaultHrefPrefix matches the layout where the index sits next to the
// projects directory.
const DefaultHrefPrefix = "./projects/"

// ProjectEntry is one listed project.
type ProjectEntry struct {
	Folder string
	Title  string
	Href   string
}

// ProjectList is an ordered set of entries.
type ProjectList []ProjectEntry

// NewEntry builds an entry whose href points at the folder's page file.
func NewEntry(folder, title, hrefPrefix string) ProjectEntry {
	return ProjectEntry{
		Folder: folder,
		Title:  title,
		Href:   Href(hrefPrefix, folder),
	}
}

// Href joins prefix, the path-escaped folder name and PageFile.
func Href(prefix, folder string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + url.PathEscape(folder) + "/" + PageFile
}

// SortKey folds case so titles compare case-insensitively across scripts.
func SortKey(title string) string {
	return cases.Fold().String(title)
}

// Sort orders the list by title, case-insensitively and ascending. Equal
// keys fall back to the raw title and then the folder, so the order is total.
func (l ProjectList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		ki, kj := SortKey(l[i].Title), SortKey(l[j].Title)
		if ki != kj {
			return ki < kj
		}
		if l[i].Title != l[j].Title {
			return l[i].Title < l[j].Title
		}
		return l[i].Folder < l[j].Folder
	})
}
