package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(version string) HelpOverlay {
	return HelpOverlay{version: version}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, height int) {
	h.width = w
	h.height = height
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 3)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	keyStyle := HelpOverlayKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("ImageDive"))
	if h.version != "" {
		content.WriteString(dimStyle.Render(" " + h.version))
	}
	content.WriteString("\n")

	section := func(title string, lines [][2]string) {
		content.WriteString(sectionStyle.Render(title))
		content.WriteString("\n")
		for _, l := range lines {
			content.WriteString(formatHelpLine(keyStyle, descStyle, l[0], l[1]))
		}
	}

	section("Navigation", [][2]string{
		{"↑↓ jk", "Move"},
		{"←→ hl", "Collapse / Expand"},
		{"Enter", "Toggle group"},
		{"+ / -", "Expand / Collapse all"},
		{"PgUp/PgDn", "Scroll faster"},
		{"g / G", "Top / Bottom"},
		{"Tab", "Switch panel"},
	})
	section("Images", [][2]string{
		{"/", "Filter by name"},
		{"c", "Copy name"},
		{"y / Y", "Copy relative / full path"},
		{"Space", "Open in default app"},
		{"o", "Reveal in file manager"},
	})
	section("Workspace", [][2]string{
		{"b", "Image background"},
		{"f", "Project folders"},
		{"r", "Rescan"},
		{"q", "Quit"},
	})

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press any key to close"))

	box := boxStyle.Render(content.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int) string {
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	type hint struct {
		key  string
		desc string
	}

	fullHints := []hint{
		{"↑↓←→", "navigate"},
		{"Enter", "toggle"},
		{"Tab", "panel"},
		{"/", "filter"},
		{"c", "copy"},
		{"Space", "open"},
		{"b", "background"},
		{"?", "help"},
		{"q", "quit"},
	}

	compactHints := []hint{
		{"↑↓", "nav"},
		{"/", "filter"},
		{"c", "copy"},
		{"?", "help"},
		{"q", "quit"},
	}

	minimalHints := []hint{
		{"?", "help"},
		{"q", "quit"},
	}

	var hints []hint
	switch {
	case width >= 100:
		hints = fullHints
	case width >= 60:
		hints = compactHints
	default:
		hints = minimalHints
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, HelpKey.Render(h.key)+" "+descStyle.Render(h.desc))
	}

	separator := "   "
	if width < 80 {
		separator = "  "
	}

	return HelpStyle.Width(width).MaxHeight(1).Render(strings.Join(parts, separator))
}
