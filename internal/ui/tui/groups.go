package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/model"
)

type rowKind int

const (
	rowProject rowKind = iota
	rowGroup
	rowImage
)

// row is one visible line of the group panel
type row struct {
	kind    rowKind
	depth   int
	project *grouper.Project
	group   *grouper.Group
	image   model.ImageFile
	count   int // images shown under a project or group header
}

// GroupPanel displays projects, directory groups and their images
type GroupPanel struct {
	tree    *grouper.Tree
	filter  string
	rows    []row
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
	focused bool

	background  string
	swatchWidth int
}

// NewGroupPanel creates a new group panel
func NewGroupPanel() GroupPanel {
	return GroupPanel{swatchWidth: 2}
}

// SetTree replaces the displayed tree, applying a previous expansion state.
// The selection stays on the same image or group when it still exists.
func (g *GroupPanel) SetTree(tree *grouper.Tree, prev grouper.State) {
	selected, hadSelection := g.Selected()

	grouper.Restore(tree, prev)
	g.tree = tree
	g.updateVisible()

	g.cursor = 0
	g.offset = 0
	if hadSelection {
		g.reselect(selected)
	}
}

// Tree returns the displayed tree
func (g GroupPanel) Tree() *grouper.Tree {
	return g.tree
}

// State captures the current expansion of every project and group
func (g GroupPanel) State() grouper.State {
	return grouper.Capture(g.tree)
}

// SetFilter narrows the images to names containing substr
func (g *GroupPanel) SetFilter(substr string) {
	if substr == g.filter {
		return
	}
	g.filter = substr
	g.updateVisible()
	g.clampCursor()
}

// Filter returns the active name filter
func (g GroupPanel) Filter() string {
	return g.filter
}

// SetBackground sets the swatch style drawn before every image
func (g *GroupPanel) SetBackground(style string, imageSize int) {
	g.background = style
	g.swatchWidth = SwatchWidth(imageSize)
}

// SetSize sets the panel dimensions
func (g *GroupPanel) SetSize(w, h int) {
	g.width = w
	g.height = h
	g.ensureVisible()
}

// SetFocused sets focus state
func (g *GroupPanel) SetFocused(focused bool) {
	g.focused = focused
}

// Selected returns the row under the cursor
func (g GroupPanel) Selected() (row, bool) {
	if g.cursor >= 0 && g.cursor < len(g.rows) {
		return g.rows[g.cursor], true
	}
	return row{}, false
}

// SelectedImage returns the image under the cursor
func (g GroupPanel) SelectedImage() (model.ImageFile, bool) {
	r, ok := g.Selected()
	if !ok || r.kind != rowImage {
		return model.ImageFile{}, false
	}
	return r.image, true
}

// SelectedGroup returns the group under the cursor, or the group of the
// selected image
func (g GroupPanel) SelectedGroup() *grouper.Group {
	r, ok := g.Selected()
	if !ok {
		return nil
	}
	return r.group
}

// SelectedProject returns the project the cursor is in
func (g GroupPanel) SelectedProject() *grouper.Project {
	r, ok := g.Selected()
	if !ok {
		return nil
	}
	return r.project
}

// VisibleImages returns the number of images passing the filter
func (g GroupPanel) VisibleImages() int {
	n := 0
	for _, r := range g.rows {
		if r.kind == rowGroup {
			n += r.count
		}
	}
	return n
}

// MoveUp moves cursor up
func (g *GroupPanel) MoveUp() {
	if g.cursor > 0 {
		g.cursor--
		g.ensureVisible()
	}
}

// MoveDown moves cursor down
func (g *GroupPanel) MoveDown() {
	if g.cursor < len(g.rows)-1 {
		g.cursor++
		g.ensureVisible()
	}
}

// PageUp moves cursor up by quarter page
func (g *GroupPanel) PageUp() {
	g.cursor -= g.pageSize()
	g.clampCursor()
}

// PageDown moves cursor down by quarter page
func (g *GroupPanel) PageDown() {
	g.cursor += g.pageSize()
	g.clampCursor()
}

func (g GroupPanel) pageSize() int {
	pageSize := (g.height - 4) / 4
	if pageSize < 1 {
		pageSize = 1
	}
	return pageSize
}

// GoToTop moves to first row
func (g *GroupPanel) GoToTop() {
	g.cursor = 0
	g.offset = 0
}

// GoToBottom moves to last row
func (g *GroupPanel) GoToBottom() {
	g.cursor = len(g.rows) - 1
	g.clampCursor()
}

// Toggle flips the project or group under the cursor
func (g *GroupPanel) Toggle() {
	r, ok := g.Selected()
	if !ok {
		return
	}
	switch r.kind {
	case rowProject:
		g.setExpanded(r, !r.project.Expanded)
	case rowGroup:
		g.setExpanded(r, !r.group.Expanded)
	}
}

// Expand opens the project or group under the cursor
func (g *GroupPanel) Expand() {
	if r, ok := g.Selected(); ok && r.kind != rowImage {
		g.setExpanded(r, true)
	}
}

// Collapse closes the project or group under the cursor. On an image it
// closes the image's group and moves the cursor onto the group header.
func (g *GroupPanel) Collapse() {
	r, ok := g.Selected()
	if !ok {
		return
	}
	if r.kind == rowImage {
		r.group.Expanded = false
		g.updateVisible()
		g.selectGroup(r.group.Key)
		return
	}
	g.setExpanded(r, false)
}

func (g *GroupPanel) setExpanded(r row, expanded bool) {
	switch r.kind {
	case rowProject:
		r.project.Expanded = expanded
	case rowGroup:
		r.group.Expanded = expanded
	}
	g.updateVisible()
	g.clampCursor()
}

// SetAll expands or collapses every project and group
func (g *GroupPanel) SetAll(expanded bool) {
	if g.tree == nil {
		return
	}
	selected, ok := g.Selected()
	g.tree.SetAll(expanded)
	g.updateVisible()
	if ok {
		g.reselect(selected)
	}
	g.clampCursor()
}

// SelectGroup expands the path to a group and moves the cursor onto it
func (g *GroupPanel) SelectGroup(k grouper.Key) bool {
	if g.tree == nil {
		return false
	}
	for _, p := range g.tree.Projects {
		for _, grp := range p.Groups {
			if grp.Key == k {
				p.Expanded = true
				g.updateVisible()
				return g.selectGroup(k)
			}
		}
	}
	return false
}

func (g *GroupPanel) selectGroup(k grouper.Key) bool {
	for i, r := range g.rows {
		if r.kind == rowGroup && r.group.Key == k {
			g.cursor = i
			g.ensureVisible()
			return true
		}
	}
	return false
}

// reselect puts the cursor back on the row matching prev, falling back to
// its group and then its project
func (g *GroupPanel) reselect(prev row) {
	for i, r := range g.rows {
		if r.kind == prev.kind && sameRow(r, prev) {
			g.cursor = i
			g.ensureVisible()
			return
		}
	}
	if prev.group != nil && g.selectGroup(prev.group.Key) {
		return
	}
	if prev.project != nil {
		for i, r := range g.rows {
			if r.project != nil && r.project.Key == prev.project.Key {
				g.cursor = i
				g.ensureVisible()
				return
			}
		}
	}
	g.clampCursor()
}

func sameRow(a, b row) bool {
	switch a.kind {
	case rowProject:
		return a.project.Key == b.project.Key
	case rowGroup:
		return a.group.Key == b.group.Key
	default:
		return a.group.Key == b.group.Key && a.image.Locator == b.image.Locator
	}
}

func (g *GroupPanel) clampCursor() {
	if g.cursor >= len(g.rows) {
		g.cursor = len(g.rows) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	g.ensureVisible()
}

func (g *GroupPanel) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	maxVisible := g.height - 2 // account for borders
	if maxVisible < 1 {
		maxVisible = 1
	}
	if g.cursor >= g.offset+maxVisible {
		g.offset = g.cursor - maxVisible + 1
	}
}

// updateVisible rebuilds the row list. Project headers are only shown when
// the tree has more than one project. Groups without a filter match are
// hidden.
func (g *GroupPanel) updateVisible() {
	g.rows = nil
	if g.tree == nil {
		return
	}

	multi := len(g.tree.Projects) > 1
	for _, p := range g.tree.Projects {
		depth := 0
		projectRow := len(g.rows)
		if multi {
			g.rows = append(g.rows, row{kind: rowProject, project: p})
			depth = 1
		}

		shown := 0
		for _, grp := range p.Groups {
			images := grp.Filter(g.filter)
			if g.filter != "" && len(images) == 0 {
				continue
			}
			shown += len(images)
			if multi && !p.Expanded {
				continue
			}
			g.rows = append(g.rows, row{kind: rowGroup, depth: depth, project: p, group: grp, count: len(images)})
			if !grp.Expanded {
				continue
			}
			for _, img := range images {
				g.rows = append(g.rows, row{kind: rowImage, depth: depth + 1, project: p, group: grp, image: img})
			}
		}

		if multi {
			g.rows[projectRow].count = shown
		}
	}
}

// RequiredWidth calculates the minimum width needed to display all visible content
func (g GroupPanel) RequiredWidth() int {
	if len(g.rows) == 0 {
		return 30
	}
	maxWidth := 0
	for _, r := range g.rows {
		if w := lipgloss.Width(g.buildLine(r)); w > maxWidth {
			maxWidth = w
		}
	}
	// Borders and padding
	return maxWidth + 4
}

// buildLine creates the text content for a row
func (g GroupPanel) buildLine(r row) string {
	prefix := strings.Repeat("  ", r.depth)
	switch r.kind {
	case rowProject:
		return fmt.Sprintf("%s%s %s %s%s", prefix, arrow(r.project.Expanded), r.project.Title,
			CountBadge.Render(fmt.Sprint(r.count)), newMark(r.project.IsNew))
	case rowGroup:
		return fmt.Sprintf("%s%s %s %s%s", prefix, arrow(r.group.Expanded), r.group.Title,
			CountBadge.Render(fmt.Sprint(r.count)), newMark(r.group.IsNew))
	default:
		return fmt.Sprintf("%s%s %s", prefix, Swatch(g.background, g.swatchWidth), r.image.Name)
	}
}

func arrow(expanded bool) string {
	if expanded {
		return "▼" // down triangle
	}
	return "▶" // right triangle
}

func newMark(isNew bool) string {
	if !isNew {
		return ""
	}
	return " " + NewBadge.Render("new")
}

// View renders the panel
func (g GroupPanel) View() string {
	style := GroupPanelStyle.Width(g.width).Height(g.height)
	if g.focused {
		style = style.BorderForeground(ColorPrimary)
	}

	if g.tree == nil || len(g.rows) == 0 {
		msg := "No images found"
		if g.filter != "" {
			msg = fmt.Sprintf("No images match %q", g.filter)
		}
		return style.Render(lipgloss.NewStyle().Foreground(ColorMuted).Render(msg))
	}

	maxVisible := g.height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	maxW := g.width - 2

	var lines []string
	for i := g.offset; i < len(g.rows) && len(lines) < maxVisible; i++ {
		r := g.rows[i]

		var itemStyle lipgloss.Style
		switch {
		case i == g.cursor && g.focused:
			itemStyle = ItemSelected
		case i == g.cursor:
			// Show dimmer selection when unfocused
			itemStyle = ItemSelectedUnfocused
		case r.kind == rowProject:
			itemStyle = lipgloss.NewStyle().Foreground(ColorProject).Bold(true)
		case r.kind == rowGroup:
			itemStyle = lipgloss.NewStyle().Foreground(ColorGroup)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(ColorImage)
		}
		lines = append(lines, itemStyle.MaxWidth(maxW).Render(g.buildLine(r)))
	}

	return style.Render(strings.Join(lines, "\n"))
}
