// Package grouper folds a scanned collection into the two-level tree the
// panels render: one project per root, one group per directory.
package grouper

import (
	"strings"

	"github.com/lumipallolabs/imagedive/internal/model"
)

// Options controls folding
type Options struct {
	// SortByPath stable-sorts each root's images by directory first, so a
	// directory always yields exactly one group
	SortByPath bool
}

// Group is the images of one directory run
type Group struct {
	Key      Key
	Title    string
	Expanded bool
	IsNew    bool
	Images   []model.ImageFile
}

// Project is one root and its groups
type Project struct {
	Key      Key
	Title    string
	Root     string
	Expanded bool
	IsNew    bool
	Groups   []*Group
}

// Tree is the folded collection
type Tree struct {
	CommonBase string
	Projects   []*Project
}

// Fold groups each root's images by consecutive runs of the same Path.
// Without SortByPath a directory visited in separate runs produces separate
// groups with the same title. Folding the same collection twice yields
// equal keys.
func Fold(coll model.ProjectDirCollection, opts Options) *Tree {
	tree := &Tree{CommonBase: coll.CommonBase}

	for i, dir := range coll.Dirs {
		images := dir.Images
		if opts.SortByPath {
			images = append([]model.ImageFile(nil), images...)
			model.SortByPath(images)
		}

		project := &Project{
			Key:      ProjectKey(dir.Base),
			Title:    dir.Base,
			Root:     coll.Root(i),
			Expanded: true,
		}

		var current *Group
		for _, img := range images {
			if current == nil || current.Key.Path != img.Path {
				current = &Group{
					Key:      DirectoryKey(dir.Base, img.Path),
					Title:    groupTitle(img.Path),
					Expanded: true,
				}
				project.Groups = append(project.Groups, current)
			}
			current.Images = append(current.Images, img)
		}

		tree.Projects = append(tree.Projects, project)
	}

	return tree
}

// groupTitle is the directory path shown on a group header; root-level
// images are titled by a single separator
func groupTitle(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// ImageCount returns the number of images in the tree
func (t *Tree) ImageCount() int {
	n := 0
	for _, p := range t.Projects {
		n += p.ImageCount()
	}
	return n
}

// GroupCount returns the number of groups across all projects
func (t *Tree) GroupCount() int {
	n := 0
	for _, p := range t.Projects {
		n += len(p.Groups)
	}
	return n
}

// Find locates an image by its locator
func (t *Tree) Find(locator string) (*Project, *Group, model.ImageFile, bool) {
	for _, p := range t.Projects {
		for _, g := range p.Groups {
			for _, img := range g.Images {
				if img.Locator == locator {
					return p, g, img, true
				}
			}
		}
	}
	return nil, nil, model.ImageFile{}, false
}

// SetAll expands or collapses every project and group
func (t *Tree) SetAll(expanded bool) {
	for _, p := range t.Projects {
		p.Expanded = expanded
		for _, g := range p.Groups {
			g.Expanded = expanded
		}
	}
}

// ImageCount returns the number of images in the project
func (p *Project) ImageCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Images)
	}
	return n
}

// Filter returns the images whose name contains substr. An empty substr
// matches everything.
func (g *Group) Filter(substr string) []model.ImageFile {
	if substr == "" {
		return g.Images
	}
	var out []model.ImageFile
	for _, img := range g.Images {
		if strings.Contains(img.Name, substr) {
			out = append(out, img)
		}
	}
	return out
}
