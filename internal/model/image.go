package model

import (
	"path/filepath"
	"sort"

	"github.com/lumipallolabs/imagedive/internal/pathutil"
)

// SupportedExtensions lists the image extensions picked up by a scan.
// Matching is case-sensitive.
var SupportedExtensions = []string{
	".svg", ".png", ".jpeg", ".jpg", ".ico", ".gif",
	".webp", ".bmp", ".tif", ".tiff", ".apng", ".avif",
}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		m[ext] = true
	}
	return m
}()

// IsSupportedImage reports whether name carries a supported image extension
func IsSupportedImage(name string) bool {
	return supported[filepath.Ext(name)]
}

// ImageFile is a single discovered image
type ImageFile struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"` // directory relative to the scan root, "" at the root
	Locator string `json:"uri" yaml:"uri"`
}

// ProjectDir holds the images found under one root
type ProjectDir struct {
	Base   string      `json:"base" yaml:"base"` // root with the common prefix removed
	Images []ImageFile `json:"imgs" yaml:"imgs"`
}

// ProjectDirCollection is the result of one scan over all roots
type ProjectDirCollection struct {
	CommonBase string       `json:"commonBase" yaml:"commonBase"`
	Dirs       []ProjectDir `json:"dirs" yaml:"dirs"`
}

// NewCollection returns an empty collection
func NewCollection() ProjectDirCollection {
	return ProjectDirCollection{Dirs: []ProjectDir{}}
}

// Root reconstructs the absolute root path of Dirs[i]
func (c ProjectDirCollection) Root(i int) string {
	if i < 0 || i >= len(c.Dirs) {
		return ""
	}
	return c.CommonBase + c.Dirs[i].Base
}

// ImageCount returns the number of images across all dirs
func (c ProjectDirCollection) ImageCount() int {
	n := 0
	for _, d := range c.Dirs {
		n += len(d.Images)
	}
	return n
}

// IsEmpty reports whether the scan found nothing
func (c ProjectDirCollection) IsEmpty() bool {
	return len(c.Dirs) == 0
}

// Find looks up an image by locator and returns the index of its dir
func (c ProjectDirCollection) Find(locator string) (int, ImageFile, bool) {
	for i, d := range c.Dirs {
		for _, img := range d.Images {
			if img.Locator == locator {
				return i, img, true
			}
		}
	}
	return -1, ImageFile{}, false
}

// WithDelimiter returns a copy with separators in the common base, every
// dir base and every image path rewritten to delim. The receiver is not
// modified. A "Default" or empty delimiter returns an unchanged copy.
func (c ProjectDirCollection) WithDelimiter(delim string) ProjectDirCollection {
	out := ProjectDirCollection{
		CommonBase: pathutil.ReplaceSeparators(c.CommonBase, delim),
		Dirs:       make([]ProjectDir, len(c.Dirs)),
	}
	for i, d := range c.Dirs {
		images := make([]ImageFile, len(d.Images))
		for j, img := range d.Images {
			img.Path = pathutil.ReplaceSeparators(img.Path, delim)
			images[j] = img
		}
		out.Dirs[i] = ProjectDir{
			Base:   pathutil.ReplaceSeparators(d.Base, delim),
			Images: images,
		}
	}
	return out
}

// SortByPath stable-sorts images by directory path, keeping visit order
// inside a directory
func SortByPath(images []ImageFile) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})
}

// SortByLocation sorts images by directory path, then by name
func SortByLocation(images []ImageFile) {
	sort.Slice(images, func(i, j int) bool {
		if images[i].Path != images[j].Path {
			return images[i].Path < images[j].Path
		}
		return images[i].Name < images[j].Name
	})
}
