package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imagedive/internal/config"
)

// BackgroundSelector lists the image background styles
type BackgroundSelector struct {
	selected int
	visible  bool
	width    int
	height   int
}

// NewBackgroundSelector creates a new background selector component
func NewBackgroundSelector() BackgroundSelector {
	return BackgroundSelector{}
}

// Open shows the selector with current highlighted. Unknown styles start
// at the first entry.
func (b *BackgroundSelector) Open(current string) {
	b.selected = max(slices.Index(config.Backgrounds, current), 0)
	b.visible = true
}

// Selected returns the highlighted style
func (b BackgroundSelector) Selected() string {
	return config.Backgrounds[b.selected]
}

// SetVisible sets visibility of the selector
func (b *BackgroundSelector) SetVisible(visible bool) {
	b.visible = visible
}

// IsVisible returns whether the selector is visible
func (b BackgroundSelector) IsVisible() bool {
	return b.visible
}

// SetSize sets the dimensions for centering
func (b *BackgroundSelector) SetSize(w, h int) {
	b.width = w
	b.height = h
}

// MoveUp moves selection up
func (b *BackgroundSelector) MoveUp() {
	if b.selected > 0 {
		b.selected--
	}
}

// MoveDown moves selection down
func (b *BackgroundSelector) MoveDown() {
	if b.selected < len(config.Backgrounds)-1 {
		b.selected++
	}
}

// View renders the background selector overlay
func (b BackgroundSelector) View() string {
	if !b.visible {
		return ""
	}

	var content strings.Builder
	content.WriteString(OverlayTitle.Render("Image Background"))
	content.WriteString("\n")

	for i, style := range config.Backgrounds {
		line := Swatch(style, 3) + " " + style
		if i == b.selected {
			content.WriteString(OverlayItemSelected.Render(line))
		} else {
			content.WriteString(OverlayItem.Render(line))
		}
		content.WriteString("\n")
	}

	content.WriteString(OverlayHint.Render("↑/↓ select  Enter confirm  Esc cancel"))

	box := OverlayBox.Render(strings.TrimSuffix(content.String(), "\n"))
	return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, box)
}
