package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/pathutil"
	"github.com/spf13/afero"
)

// Walker is the sequential depth-first scanner. It keeps an explicit LIFO
// work list instead of recursing, so deep trees cannot exhaust the stack.
type Walker struct {
	fs      afero.Fs
	locator Locator
}

// NewWalker creates a walker over fsys. A nil fsys means the OS filesystem
// and a nil locator means FileURI.
func NewWalker(fsys afero.Fs, loc Locator) *Walker {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if loc == nil {
		loc = FileURI
	}
	return &Walker{fs: fsys, locator: loc}
}

// Walk scans root and returns every supported image below it. Symbolic links
// are followed; each directory is visited at most once by canonical path, so
// link cycles terminate. The first filesystem error stops the walk.
func (w *Walker) Walk(ctx context.Context, root string, filters Filters) ([]model.ImageFile, error) {
	root = filepath.Clean(root)
	filters = filters.Normalize()

	images := []model.ImageFile{}
	seen := make(map[string]bool)

	var stack []string
	for _, seed := range seedPaths(w.fs, root, filters) {
		key := w.canonical(seed)
		if seen[key] {
			continue
		}
		seen[key] = true
		stack = append(stack, seed)
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return images, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		infos, err := afero.ReadDir(w.fs, dir)
		if err != nil {
			return images, fmt.Errorf("read dir %s: %w", dir, err)
		}

		for _, info := range infos {
			name := info.Name()
			full := filepath.Join(dir, name)

			if info.Mode()&os.ModeSymlink != 0 {
				info, err = w.fs.Stat(full)
				if err != nil {
					return images, fmt.Errorf("stat %s: %w", full, err)
				}
			}

			switch {
			case info.IsDir():
				if pathutil.EndsWithAny(full, filters.Exclude) {
					continue
				}
				key := w.canonical(full)
				if seen[key] {
					continue
				}
				seen[key] = true
				stack = append(stack, full)
			case info.Mode().IsRegular() && model.IsSupportedImage(name):
				images = append(images, model.ImageFile{
					Name:    name,
					Path:    relDir(root, dir),
					Locator: w.locator.Locate(full),
				})
			}
		}
	}

	return images, nil
}

// canonical resolves links on the OS filesystem. Other filesystems have no
// links to resolve, so the cleaned path is already canonical.
func (w *Walker) canonical(path string) string {
	if _, ok := w.fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
	}
	return filepath.Clean(path)
}

// relDir strips root from dir. The result is "" for root itself and starts
// with a separator otherwise, also when root is the filesystem root.
func relDir(root, dir string) string {
	rel := strings.TrimPrefix(dir, root)
	if rel != "" && !os.IsPathSeparator(rel[0]) {
		rel = string(filepath.Separator) + rel
	}
	return rel
}

// seedPaths returns the directories a walk of root starts from: root itself
// without includes, otherwise every include that exists below root
func seedPaths(fsys afero.Fs, root string, filters Filters) []string {
	if len(filters.Include) == 0 {
		return []string{root}
	}

	var seeds []string
	for _, inc := range filters.Include {
		seed := filepath.Join(root, inc)
		if !within(root, seed) {
			logging.Scanner.Printf("include %q escapes %s, skipped", inc, root)
			continue
		}
		ok, err := afero.Exists(fsys, seed)
		if err != nil || !ok {
			continue
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

func within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
