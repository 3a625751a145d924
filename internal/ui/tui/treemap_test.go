package tui

import (
	"fmt"
	"testing"

	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquarifyDirect(t *testing.T) {
	root := &treemapItem{
		size: 300,
		children: []*treemapItem{
			{size: 100},
			{size: 100},
			{size: 100},
		},
	}

	blocks, metas := squarify.Squarify(root, squarify.Rect{W: 76, H: 22}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// squarify returns the children at depth 0
	depth0Count := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0Count++
		}
	}
	assert.Equal(t, 3, depth0Count)
}

// projectWithGroups builds a project whose groups hold the given image counts
func projectWithGroups(counts ...int) *grouper.Project {
	var images []model.ImageFile
	for i, n := range counts {
		for j := 0; j < n; j++ {
			images = append(images, model.ImageFile{
				Name:    fmt.Sprintf("img%d.png", j),
				Path:    fmt.Sprintf("/dir%02d", i),
				Locator: fmt.Sprintf("%d/%d", i, j),
			})
		}
	}
	coll := model.ProjectDirCollection{Dirs: []model.ProjectDir{{Base: "/proj", Images: images}}}
	return grouper.Fold(coll, grouper.Options{SortByPath: true}).Projects[0]
}

func TestOverviewLayoutStaysInBounds(t *testing.T) {
	panel := NewOverviewPanel()
	panel.SetSize(80, 24)
	panel.SetProject(projectWithGroups(100, 80, 50, 30, 10, 5, 1, 1))

	require.NotEmpty(t, panel.blocks)

	contentW := panel.width - overviewBorderH
	contentH := panel.height
	for i, block := range panel.blocks {
		assert.GreaterOrEqual(t, block.X, 0, "block %d", i)
		assert.GreaterOrEqual(t, block.Y, 0, "block %d", i)
		assert.LessOrEqual(t, block.X+block.Width, contentW, "block %d", i)
		assert.LessOrEqual(t, block.Y+block.Height, contentH, "block %d", i)
		if !block.IsGrouped {
			assert.NotNil(t, block.Group, "block %d", i)
		}
	}
}

func TestOverviewLargestGroupGetsLargestBlock(t *testing.T) {
	panel := NewOverviewPanel()
	panel.SetSize(80, 24)
	panel.SetProject(projectWithGroups(5, 40, 10))

	var largest Block
	for _, b := range panel.blocks {
		if b.Width*b.Height > largest.Width*largest.Height {
			largest = b
		}
	}
	require.NotNil(t, largest.Group)
	assert.Equal(t, "/dir01", largest.Group.Title)
}

func TestOverviewGroupsRemainderIntoOneBlock(t *testing.T) {
	counts := make([]int, 40)
	for i := range counts {
		counts[i] = 40 - i
	}

	panel := NewOverviewPanel()
	panel.SetSize(60, 20)
	panel.SetProject(projectWithGroups(counts...))

	var grouped []Block
	shown := 0
	for _, b := range panel.blocks {
		if b.IsGrouped {
			grouped = append(grouped, b)
		} else {
			shown++
		}
	}
	require.Len(t, grouped, 1)
	assert.LessOrEqual(t, shown, maxVisibleItems)
	assert.Equal(t, 40, shown+grouped[0].GroupCount)
	assert.GreaterOrEqual(t, grouped[0].GroupCount, 2)
}

func TestOverviewMoveToBlock(t *testing.T) {
	panel := NewOverviewPanel()
	panel.SetSize(80, 24)
	panel.SetProject(projectWithGroups(10, 10, 10, 10))

	panel.MoveToBlock(1, 0)
	first := panel.Selected()
	require.NotNil(t, first, "moving without a selection picks the first block")

	moved := false
	for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		panel.SetSelected(first)
		panel.MoveToBlock(d[0], d[1])
		if panel.Selected() != first {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestOverviewViewRendersTitles(t *testing.T) {
	panel := NewOverviewPanel()
	panel.SetSize(80, 24)
	panel.SetProject(projectWithGroups(3, 2))
	panel.SelectFirst()

	view := panel.View()
	assert.Contains(t, view, "/dir00")
	assert.Contains(t, view, "/dir01")
	assert.Contains(t, view, "3 images")

	empty := NewOverviewPanel()
	empty.SetSize(40, 10)
	assert.Contains(t, empty.View(), "No groups")
}
