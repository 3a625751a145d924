package scanner

import (
	"context"
	"strings"

	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/pathutil"
)

// Filters narrows a walk. Include names sub-paths relative to the root that
// seed the walk instead of the root itself. Exclude drops any directory whose
// full path ends with one of the entries.
type Filters struct {
	Include []string
	Exclude []string
}

// Normalize trims whitespace, drops empty entries and strips one leading and
// one trailing separator from every include entry
func (f Filters) Normalize() Filters {
	var out Filters
	for _, inc := range f.Include {
		inc = pathutil.TrimSlashes(strings.TrimSpace(inc))
		if inc != "" {
			out.Include = append(out.Include, inc)
		}
	}
	for _, exc := range f.Exclude {
		exc = strings.TrimSpace(exc)
		if exc != "" {
			out.Exclude = append(out.Exclude, exc)
		}
	}
	return out
}

// Progress reports scanning progress
type Progress struct {
	RootsDone   int
	RootsTotal  int
	ImagesFound int
	CurrentRoot string
}

// Scanner walks one root and returns the images below it in visit order.
// On error the images found so far are returned alongside the error.
type Scanner interface {
	Walk(ctx context.Context, root string, filters Filters) ([]model.ImageFile, error)
}

// New returns the parallel walker when parallel is set, the sequential
// one otherwise
func New(parallel bool, loc Locator) Scanner {
	if parallel {
		return NewFastWalker(0, loc)
	}
	return NewWalker(nil, loc)
}
