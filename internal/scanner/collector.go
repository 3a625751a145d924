package scanner

import (
	"context"
	"path/filepath"

	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/pathutil"
)

// Collector walks every root and assembles one collection
type Collector struct {
	scanner    Scanner
	OnProgress func(Progress)
}

// NewCollector creates a collector backed by s
func NewCollector(s Scanner) *Collector {
	return &Collector{scanner: s}
}

type rootHit struct {
	root   string
	images []model.ImageFile
}

// Collect walks roots in order. A root whose walk fails keeps whatever was
// found before the failure; roots without images are dropped. CommonBase is
// the longest segment prefix shared by the surviving roots and every Base is
// its root with that prefix removed.
func (c *Collector) Collect(ctx context.Context, roots []string, filters Filters) model.ProjectDirCollection {
	filters = filters.Normalize()

	var hits []rootHit
	found := 0
	for i, root := range roots {
		if ctx.Err() != nil {
			break
		}
		root = filepath.Clean(root)

		images, err := c.scanner.Walk(ctx, root, filters)
		if err != nil {
			logging.Scanner.Printf("walk %s stopped after %d images: %v", root, len(images), err)
		}
		found += len(images)
		if c.OnProgress != nil {
			c.OnProgress(Progress{
				RootsDone:   i + 1,
				RootsTotal:  len(roots),
				ImagesFound: found,
				CurrentRoot: root,
			})
		}
		if len(images) == 0 {
			continue
		}
		hits = append(hits, rootHit{root: root, images: images})
	}

	out := model.NewCollection()
	if len(hits) == 0 {
		return out
	}

	paths := make([]string, len(hits))
	for i, h := range hits {
		paths[i] = h.root
	}
	n := pathutil.CommonPrefixLength(paths)

	out.CommonBase = paths[0][:n]
	for _, h := range hits {
		out.Dirs = append(out.Dirs, model.ProjectDir{
			Base:   h.root[n:],
			Images: h.images,
		})
	}
	logging.Scanner.Printf("collected %d images in %d of %d roots", found, len(hits), len(roots))
	return out
}
