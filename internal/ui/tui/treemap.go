package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/imagedive/internal/grouper"
)

// Block represents a rectangle in the overview
type Block struct {
	Group         *grouper.Group
	X, Y          int
	Width, Height int
	// For grouped items (when Group is nil)
	IsGrouped   bool
	GroupCount  int
	GroupImages int
}

// OverviewPanel shows the groups of one project as a treemap sized by
// image count
type OverviewPanel struct {
	project  *grouper.Project
	selected *grouper.Group
	blocks   []Block
	width    int
	height   int
	focused  bool

	// Render cache
	cachedView     string
	cacheValid     bool
	cachedSelected *grouper.Group
	cachedFocused  bool
}

// NewOverviewPanel creates a new overview panel
func NewOverviewPanel() OverviewPanel {
	return OverviewPanel{}
}

// SetProject sets the project whose groups are shown
func (t *OverviewPanel) SetProject(p *grouper.Project) {
	if p == t.project {
		return
	}
	t.project = p
	t.selected = nil
	t.layout()
}

// Project returns the displayed project
func (t OverviewPanel) Project() *grouper.Project {
	return t.project
}

// SetSize sets the panel dimensions
func (t *OverviewPanel) SetSize(w, h int) {
	if t.width != w || t.height != h {
		t.width = w
		t.height = h
		t.layout()
	}
}

// SetFocused sets focus state
func (t *OverviewPanel) SetFocused(focused bool) {
	t.focused = focused
}

// InvalidateCache marks the render cache as invalid
func (t *OverviewPanel) InvalidateCache() {
	t.cacheValid = false
}

// Refresh recomputes the layout after the project's groups changed
func (t *OverviewPanel) Refresh() {
	t.layout()
}

// SetSelected highlights a group (for sync from the group panel)
func (t *OverviewPanel) SetSelected(g *grouper.Group) {
	t.selected = g
}

// Selected returns the highlighted group
func (t OverviewPanel) Selected() *grouper.Group {
	return t.selected
}

// Blocks returns the laid out blocks
func (t OverviewPanel) Blocks() []Block {
	return t.blocks
}

// SelectFirst selects the first non-grouped block
func (t *OverviewPanel) SelectFirst() {
	for i := range t.blocks {
		if !t.blocks[i].IsGrouped && t.blocks[i].Group != nil {
			t.selected = t.blocks[i].Group
			return
		}
	}
}

// MoveToBlock moves selection to an adjacent block
func (t *OverviewPanel) MoveToBlock(dx, dy int) {
	if len(t.blocks) == 0 {
		return
	}

	var currentBlock *Block
	for i := range t.blocks {
		if !t.blocks[i].IsGrouped && t.blocks[i].Group == t.selected {
			currentBlock = &t.blocks[i]
			break
		}
	}

	if currentBlock == nil {
		t.SelectFirst()
		return
	}

	cx := currentBlock.X + currentBlock.Width/2
	cy := currentBlock.Y + currentBlock.Height/2

	// Find best candidate in the requested direction
	var bestBlock *Block
	bestDist := -1

	for i := range t.blocks {
		block := &t.blocks[i]
		if block.IsGrouped || block.Group == nil || block.Group == t.selected {
			continue
		}

		bx := block.X + block.Width/2
		by := block.Y + block.Height/2

		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}

		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestBlock = block
		}
	}

	if bestBlock != nil {
		t.selected = bestBlock.Group
	}
}

// treemapItem wraps a group for the squarify algorithm
type treemapItem struct {
	group    *grouper.Group
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

const (
	minBlockWidth   = 8  // minimum width for any block (fits short label)
	minBlockHeight  = 3  // minimum height for any block (border + 1 line text)
	maxVisibleItems = 15 // max items before grouping remainder into "N more"

	// Blocks carry their own borders; keep a margin for the rightmost one
	overviewBorderH = 2
)

// squarifyItems lays out items in rect and returns the depth-0 blocks
func squarifyItems(items []*treemapItem, rect squarify.Rect) ([]squarify.Block, []squarify.Meta) {
	root := &treemapItem{children: items}
	for _, child := range items {
		root.size += child.size
	}
	return squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})
}

// layout calculates block positions using the squarify library
func (t *OverviewPanel) layout() {
	t.blocks = nil
	t.cacheValid = false

	if t.project == nil || len(t.project.Groups) == 0 || t.width <= 2 || t.height <= 2 {
		return
	}

	contentW := t.width - overviewBorderH
	contentH := t.height
	if contentW < 1 {
		contentW = 1
	}

	items := make([]*treemapItem, 0, len(t.project.Groups))
	for _, g := range t.project.Groups {
		items = append(items, &treemapItem{group: g, size: float64(len(g.Images))})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].size > items[j].size
	})

	rect := squarify.Rect{W: float64(contentW), H: float64(contentH)}

	var blocks []squarify.Block
	var metas []squarify.Meta

	maxVisible := len(items)
	if maxVisible > maxVisibleItems {
		maxVisible = maxVisibleItems
	}

	// Find the maximum items that fit with minimum dimensions
	for maxVisible >= 2 {
		mainRect := rect
		numVisible := maxVisible
		if numVisible > len(items) {
			numVisible = len(items)
		}

		// Never group a single leftover item into "1 more"
		hasGroupedItems := len(items)-numVisible >= 2
		if hasGroupedItems {
			mainRect.H = float64(contentH - minBlockHeight)
			numVisible = maxVisible - 1
		}

		blocks, metas = squarifyItems(items[:numVisible], mainRect)

		allFit := true
		for i, block := range blocks {
			if i >= len(metas) || metas[i].Depth != 0 {
				continue
			}
			w := int(math.Floor(block.X+block.W)) - int(math.Floor(block.X))
			h := int(math.Floor(block.Y+block.H)) - int(math.Floor(block.Y))
			if w < minBlockWidth || h < minBlockHeight {
				allFit = false
				break
			}
		}

		if allFit {
			if remaining := len(items) - numVisible; hasGroupedItems && remaining >= 2 {
				t.blocks = append(t.blocks, groupedBlock(items[numVisible:], contentW, contentH))
			}
			break
		}
		maxVisible--
	}

	// Only one item fits: show the largest
	if maxVisible < 2 {
		mainRect := rect
		needsGrouped := len(items) > 2
		if needsGrouped {
			mainRect.H = float64(contentH - minBlockHeight)
		}
		blocks, metas = squarifyItems(items[:1], mainRect)
		if needsGrouped {
			t.blocks = append(t.blocks, groupedBlock(items[1:], contentW, contentH))
		}
	}

	maxMainBlockEndY := 0
	for i, block := range blocks {
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok || i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round all edges so adjacent blocks share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		endX := int(math.Round(block.X + block.W))
		endY := int(math.Round(block.Y + block.H))
		if endX > contentW {
			endX = contentW
		}
		if endY > contentH {
			endY = contentH
		}
		w := endX - x
		h := endY - y
		if w < 1 || h < 1 || x >= contentW || y >= contentH {
			continue
		}

		if y+h > maxMainBlockEndY {
			maxMainBlockEndY = y + h
		}
		t.blocks = append(t.blocks, Block{Group: item.group, X: x, Y: y, Width: w, Height: h})
	}

	// The "N more" strip starts right below the main blocks
	for i := range t.blocks {
		if t.blocks[i].IsGrouped {
			t.blocks[i].Y = maxMainBlockEndY
			t.blocks[i].Height = contentH - maxMainBlockEndY
			if t.blocks[i].Height < 1 {
				t.blocks[i].Height = 1
			}
			break
		}
	}
}

// groupedBlock summarizes items in one bottom strip
func groupedBlock(items []*treemapItem, contentW, contentH int) Block {
	images := 0
	for _, it := range items {
		images += int(it.size)
	}
	return Block{
		Y:           contentH - minBlockHeight,
		Width:       contentW,
		Height:      minBlockHeight,
		IsGrouped:   true,
		GroupCount:  len(items),
		GroupImages: images,
	}
}

// View renders the overview
func (t *OverviewPanel) View() string {
	if t.project == nil || len(t.blocks) == 0 {
		return OverviewPanelStyle.Width(t.width - 2).Height(t.height - 2).Render(
			lipgloss.NewStyle().Foreground(ColorMuted).Render("No groups"))
	}

	if t.cacheValid && t.cachedSelected == t.selected && t.cachedFocused == t.focused {
		return t.cachedView
	}

	contentH := t.height
	if contentH < 1 {
		contentH = 1
	}

	// Render each block completely using lipgloss, then composite line by line
	type renderedBlock struct {
		block Block
		lines []string
	}

	var rendered []renderedBlock
	for _, block := range t.blocks {
		if block.Width < 1 || block.Height < 1 {
			continue
		}
		lines := strings.Split(t.renderBlock(block), "\n")
		rendered = append(rendered, renderedBlock{block, lines})
	}

	type blockSegment struct {
		x     int
		width int
		line  string
	}

	var outputLines []string
	for y := 0; y < contentH; y++ {
		var segments []blockSegment
		for _, rb := range rendered {
			lineIdx := y - rb.block.Y
			if lineIdx >= 0 && lineIdx < len(rb.lines) && lineIdx < rb.block.Height {
				segments = append(segments, blockSegment{
					x:     rb.block.X,
					width: rb.block.Width,
					line:  rb.lines[lineIdx],
				})
			}
		}
		sort.Slice(segments, func(i, j int) bool {
			return segments[i].x < segments[j].x
		})

		var lineBuilder strings.Builder
		currentX := 0
		for _, seg := range segments {
			if seg.x > currentX {
				lineBuilder.WriteString(strings.Repeat(" ", seg.x-currentX))
			}
			lineBuilder.WriteString(seg.line)
			currentX = seg.x + seg.width
		}
		outputLines = append(outputLines, lineBuilder.String())
	}

	style := lipgloss.NewStyle().Height(t.height).MaxHeight(t.height)

	t.cachedView = style.Render(strings.Join(outputLines, "\n"))
	t.cacheValid = true
	t.cachedSelected = t.selected
	t.cachedFocused = t.focused

	return t.cachedView
}

// renderBlock renders a complete block using lipgloss and returns the styled string
func (t OverviewPanel) renderBlock(block Block) string {
	var fgColor, borderColor lipgloss.Color

	switch {
	case block.IsGrouped:
		fgColor = lipgloss.Color("#6B7280")
		borderColor = lipgloss.Color("#4B5563")
	case block.Group != nil && block.Group.IsNew:
		fgColor = ColorNew
		borderColor = ColorNew
	default:
		fgColor = ColorGroup
		borderColor = ColorGroup
	}

	isSelected := block.Group != nil && block.Group == t.selected
	if isSelected && t.focused {
		fgColor = lipgloss.Color("#FFFFFF")
		borderColor = ColorPrimary
	} else if isSelected {
		fgColor = lipgloss.Color("#E0E0E0")
		borderColor = lipgloss.Color("#9D7CD8") // dimmer violet
	}

	var label, countStr string
	if block.IsGrouped {
		label = fmt.Sprintf("%d more", block.GroupCount)
		countStr = FormatCount(block.GroupImages, "image")
	} else if block.Group != nil {
		label = block.Group.Title
		countStr = FormatCount(len(block.Group.Images), "image")
	}

	innerW := block.Width - 2
	innerH := block.Height - 2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	text := label
	if innerH > 1 {
		text = label + "\n" + countStr
	}

	blockStyle := lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		MaxHeight(block.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Foreground(fgColor)

	if isSelected {
		blockStyle = blockStyle.Bold(true)
	}

	return blockStyle.Render(text)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
