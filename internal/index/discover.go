package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vk/projindex/internal/ctxlog"
)

// ErrRootNotFound is returned in strict mode when the projects directory is
// missing or cannot be listed.
var ErrRootNotFound = errors.New("no projects directory found")

// Options controls discovery.
type Options struct {
	// Strict turns an unreadable root into ErrRootNotFound instead of an
	// empty list.
	Strict bool
	// HrefPrefix is prepended to every entry's link. Empty means
	// DefaultHrefPrefix.
	HrefPrefix string
	// Root is only used to make log lines and errors readable.
	Root string
}

// Discover lists the immediate subdirectories of fsys that contain a
// PageFile, derives their titles and returns them sorted.
func Discover(ctx context.Context, fsys fs.FS, opts Options) (ProjectList, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering projects.", "root", opts.Root, "strict", opts.Strict)

	prefix := opts.HrefPrefix
	if prefix == "" {
		prefix = DefaultHrefPrefix
	}

	dirents, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if opts.Strict {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrRootNotFound, opts.Root)
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrRootNotFound, opts.Root, err)
		}
		logger.Warn("Projects directory is not readable, continuing with an empty list.", "root", opts.Root, "error", err)
		return ProjectList{}, nil
	}

	list := make(ProjectList, 0, len(dirents))
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		folder := d.Name()
		pagePath := folder + "/" + PageFile

		info, err := fs.Stat(fsys, pagePath)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("Skipping folder without a page file.", "folder", folder)
			continue
		}

		content, err := fs.ReadFile(fsys, pagePath)
		if err != nil {
			logger.Debug("Page file unreadable, using folder name for title.", "folder", folder, "error", err)
			content = nil
		}

		entry := NewEntry(folder, DeriveTitle(content, folder), prefix)
		logger.Debug("Project discovered.", "folder", entry.Folder, "title", entry.Title)
		list = append(list, entry)
	}

	list.Sort()
	logger.Debug("Discovery finished.", "projects", len(list))
	return list, nil
}
