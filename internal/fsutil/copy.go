// Package fsutil provides file system utility functions for mirroring a
// project tree into a build directory.
package fsutil

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/projindex/internal/ctxlog"
)

// OpKind identifies what a CopyOp does at its destination.
type OpKind int

const (
	// OpMkdir creates a directory.
	OpMkdir OpKind = iota
	// OpCopyFile copies a regular file's bytes.
	OpCopyFile
)

func (k OpKind) String() string {
	switch k {
	case OpMkdir:
		return "mkdir"
	case OpCopyFile:
		return "copy"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// CopyOp is one step of a copy plan. Path is slash-separated and relative
// to both the source tree and the destination directory.
type CopyOp struct {
	Kind OpKind
	Path string
	Mode fs.FileMode
}

// SkipFunc reports whether an entry with the given base name is left out.
// Returning true for a directory prunes its whole subtree.
type SkipFunc func(name string) bool

// DefaultSkipNames are OS metadata files that never belong in a build.
var DefaultSkipNames = []string{".DS_Store"}

// SkipNames returns a SkipFunc matching any of the given base names exactly.
func SkipNames(names ...string) SkipFunc {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

// MaxLinkDepth bounds how many symlinked directories may nest inside one
// another while planning. Deeper links are skipped, which also ends cycles.
const MaxLinkDepth = 8

// PlanCopy walks src and returns the operations that reproduce it in an
// empty destination. It reads only directory listings and file modes, never
// writes, and yields operations in lexical order so parents precede
// children. Symlinks are followed: a link to a file becomes a copy of that
// file and a link to a directory becomes a real directory. Broken links and
// entries that are neither files nor directories are left out with a
// warning.
func PlanCopy(ctx context.Context, src fs.FS, skip SkipFunc) ([]CopyOp, error) {
	if skip == nil {
		skip = SkipNames(DefaultSkipNames...)
	}

	p := &planner{logger: ctxlog.FromContext(ctx), src: src, skip: skip}
	if err := p.walk(".", 0); err != nil {
		return nil, fmt.Errorf("failed to plan copy: %w", err)
	}
	return p.ops, nil
}

type planner struct {
	logger *slog.Logger
	src    fs.FS
	skip   SkipFunc
	ops    []CopyOp
}

func (p *planner) walk(root string, depth int) error {
	return fs.WalkDir(p.src, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if p.skip(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return p.link(path, depth)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		p.add(path, info)
		return nil
	})
}

// link plans the target of a symlink in place of the link itself.
func (p *planner) link(path string, depth int) error {
	info, err := fs.Stat(p.src, path)
	if err != nil {
		p.logger.Warn("Skipping broken symlink.", "path", path, "error", err)
		return nil
	}
	if !info.IsDir() {
		p.add(path, info)
		return nil
	}
	if depth >= MaxLinkDepth {
		p.logger.Warn("Skipping symlinked directory nested too deeply.", "path", path, "max_depth", MaxLinkDepth)
		return nil
	}
	p.add(path, info)
	return p.walk(path, depth+1)
}

func (p *planner) add(path string, info fs.FileInfo) {
	switch {
	case info.IsDir():
		p.ops = append(p.ops, CopyOp{Kind: OpMkdir, Path: path, Mode: info.Mode().Perm()})
	case info.Mode().IsRegular():
		p.ops = append(p.ops, CopyOp{Kind: OpCopyFile, Path: path, Mode: info.Mode().Perm()})
	default:
		p.logger.Warn("Skipping entry that is neither a file nor a directory.", "path", path, "type", info.Mode().Type().String())
	}
}

// ResetDir removes dir and everything below it, then recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// ApplyCopy executes a plan produced by PlanCopy, reading file contents from
// src and writing below dstDir, which must already exist.
func ApplyCopy(ctx context.Context, ops []CopyOp, src fs.FS, dstDir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying copy plan.", "destination", dstDir, "operations", len(ops))

	var files int
	for _, op := range ops {
		target := filepath.Join(dstDir, filepath.FromSlash(op.Path))
		switch op.Kind {
		case OpMkdir:
			if err := os.MkdirAll(target, dirMode(op.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case OpCopyFile:
			if err := copyFile(src, op.Path, target, op.Mode); err != nil {
				return err
			}
			files++
		default:
			return fmt.Errorf("unknown copy operation %s for %s", op.Kind, op.Path)
		}
	}

	logger.Debug("Copy plan applied.", "destination", dstDir, "files", files)
	return nil
}

func copyFile(src fs.FS, path, target string, mode fs.FileMode) error {
	in, err := src.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode(mode))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	return nil
}

// dirMode keeps created directories traversable by their owner.
func dirMode(m fs.FileMode) fs.FileMode {
	if m == 0 {
		return 0o755
	}
	return m | 0o700
}

func fileMode(m fs.FileMode) fs.FileMode {
	if m == 0 {
		return 0o644
	}
	return m | 0o600
}
