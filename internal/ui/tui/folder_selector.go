package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FolderSelector lets the user pick which workspace roots are scanned
type FolderSelector struct {
	roots    []string
	enabled  map[string]bool
	selected int
	visible  bool
	width    int
	height   int
}

// NewFolderSelector creates a new folder selector component
func NewFolderSelector() FolderSelector {
	return FolderSelector{enabled: map[string]bool{}}
}

// Open shows the selector with the current per-root switches
func (f *FolderSelector) Open(roots []string, enabled map[string]bool) {
	f.roots = append([]string(nil), roots...)
	f.enabled = make(map[string]bool, len(roots))
	for _, r := range roots {
		on, ok := enabled[r]
		f.enabled[r] = on || !ok
	}
	if f.selected >= len(roots) {
		f.selected = 0
	}
	f.visible = true
}

// Enabled returns the edited switches
func (f FolderSelector) Enabled() map[string]bool {
	out := make(map[string]bool, len(f.enabled))
	for k, v := range f.enabled {
		out[k] = v
	}
	return out
}

// SetVisible sets visibility of the selector
func (f *FolderSelector) SetVisible(visible bool) {
	f.visible = visible
}

// IsVisible returns whether the selector is visible
func (f FolderSelector) IsVisible() bool {
	return f.visible
}

// SetSize sets the dimensions for centering
func (f *FolderSelector) SetSize(w, h int) {
	f.width = w
	f.height = h
}

// MoveUp moves selection up
func (f *FolderSelector) MoveUp() {
	if f.selected > 0 {
		f.selected--
	}
}

// MoveDown moves selection down
func (f *FolderSelector) MoveDown() {
	if f.selected < len(f.roots)-1 {
		f.selected++
	}
}

// Toggle flips the highlighted root
func (f *FolderSelector) Toggle() {
	if f.selected >= 0 && f.selected < len(f.roots) {
		r := f.roots[f.selected]
		f.enabled[r] = !f.enabled[r]
	}
}

// View renders the folder selector overlay
func (f FolderSelector) View() string {
	if !f.visible || len(f.roots) == 0 {
		return ""
	}

	var content strings.Builder
	content.WriteString(OverlayTitle.Render("Project Folders"))
	content.WriteString("\n")

	for i, r := range f.roots {
		check := "[ ]"
		if f.enabled[r] {
			check = "[x]"
		}
		line := check + " " + r
		if i == f.selected {
			content.WriteString(OverlayItemSelected.Render(line))
		} else {
			content.WriteString(OverlayItem.Render(line))
		}
		content.WriteString("\n")
	}

	content.WriteString(OverlayHint.Render("↑/↓ select  Space toggle  Enter apply  Esc cancel"))

	box := OverlayBox.Render(strings.TrimSuffix(content.String(), "\n"))
	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, box)
}
