package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/pathutil"
	"github.com/spf13/afero"
)

// FastWalker scans with parallel workers. Results are sorted by directory
// then name, since worker scheduling makes visit order unstable.
type FastWalker struct {
	workers int
	locator Locator
}

// NewFastWalker creates a parallel walker. workers < 1 lets fastwalk pick.
func NewFastWalker(workers int, loc Locator) *FastWalker {
	if loc == nil {
		loc = FileURI
	}
	return &FastWalker{workers: workers, locator: loc}
}

// fastWalk is the shared state of one FastWalker.Walk call. Callbacks run on
// several goroutines, so everything below mu is guarded by it.
type fastWalk struct {
	root    string
	filters Filters
	locator Locator

	mu     sync.Mutex
	images []model.ImageFile
	dirs   map[string]bool // canonical directories already entered
	files  map[string]bool // canonical parent + name already emitted
}

// enterDir marks the directory at path as visited and reports whether it was
// new. Directories reached through several links are walked once.
func (fw *fastWalk) enterDir(path string) bool {
	key := canonicalPath(path)
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.dirs[key] {
		return false
	}
	fw.dirs[key] = true
	return true
}

func (fw *fastWalk) addImage(path string) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	key := filepath.Join(canonicalPath(dir), name)

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.files[key] {
		return
	}
	fw.files[key] = true
	fw.images = append(fw.images, model.ImageFile{
		Name:    name,
		Path:    relDir(fw.root, dir),
		Locator: fw.locator.Locate(path),
	})
}

// visit handles one entry. Links are resolved first so a linked directory is
// filtered like a real one and never reported as an image.
func (fw *fastWalk) visit(seed, path string, d fs.DirEntry) error {
	isDir := d.IsDir()
	regular := d.Type().IsRegular()
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := fastwalk.StatDirEntry(path, d)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		isDir = info.IsDir()
		regular = info.Mode().IsRegular()
	}

	switch {
	case isDir:
		if path != seed && pathutil.EndsWithAny(path, fw.filters.Exclude) {
			return fs.SkipDir
		}
		if !fw.enterDir(path) {
			return fs.SkipDir
		}
	case regular && model.IsSupportedImage(d.Name()):
		fw.addImage(path)
	}
	return nil
}

// Walk scans root on the OS filesystem using fastwalk
func (w *FastWalker) Walk(ctx context.Context, root string, filters Filters) ([]model.ImageFile, error) {
	fw := &fastWalk{
		root:    filepath.Clean(root),
		filters: filters.Normalize(),
		locator: w.locator,
		images:  []model.ImageFile{},
		dirs:    make(map[string]bool),
		files:   make(map[string]bool),
	}

	conf := &fastwalk.Config{
		Follow:     true,
		NumWorkers: w.workers,
	}

	for _, seed := range seedPaths(afero.NewOsFs(), fw.root, fw.filters) {
		walkErr := fastwalk.Walk(conf, seed, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				return err
			}
			return fw.visit(seed, path, d)
		})
		if walkErr != nil {
			model.SortByLocation(fw.images)
			return fw.images, walkErr
		}
	}

	model.SortByLocation(fw.images)
	return fw.images, nil
}

// canonicalPath resolves links in path, falling back to the cleaned path
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// Ensure FastWalker implements Scanner
var _ Scanner = (*FastWalker)(nil)
