package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imagedive/internal/config"
)

// Colors - cyberpunk/neon palette
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorMuted      = lipgloss.Color("#4A5568") // darker muted
	ColorBorder     = lipgloss.Color("#4A5568") // border
	ColorBackground = lipgloss.Color("#1F1F23") // dark background
	ColorCyan       = lipgloss.Color("#00FFFF") // neon cyan
	ColorGroup      = lipgloss.Color("#00FFFF") // cyan for directory groups
	ColorProject    = lipgloss.Color("#FBBF24") // amber for project headers
	ColorImage      = lipgloss.Color("#A0A0A0") // dimmer for images
	ColorText       = lipgloss.Color("#E4E4E7") // default text
	ColorNew        = lipgloss.Color("#5EEAD4") // teal - appeared since last scan
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Group list
	GroupPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ItemSelected = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	ItemSelectedUnfocused = lipgloss.NewStyle().
				Background(lipgloss.Color("#4A5568")).
				Foreground(lipgloss.Color("#FFFFFF"))

	CountBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	NewBadge = lipgloss.NewStyle().
			Foreground(ColorNew).
			Bold(true)

	// Overview
	OverviewPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// Help bar - dimmer with bright key highlights
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3D4555")). // very dim
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorCyan).
		Background(lipgloss.Color("#1E3A4C")). // subtle dark cyan bg
		Padding(0, 1)

	// Inline key hint (for use in text)
	KeyHint = lipgloss.NewStyle().
		Foreground(ColorCyan).
		Background(lipgloss.Color("#1E3A4C")).
		Padding(0, 1)

	// Help overlay key style (no background for cleaner look)
	HelpOverlayKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Padding(0, 1)

	// Overlay boxes (folders, backgrounds)
	OverlayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Background(ColorBackground)

	OverlayTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			MarginBottom(1)

	OverlayItem = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(1).
			PaddingRight(1)

	OverlayItemSelected = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorPrimary).
				Bold(true).
				PaddingLeft(1).
				PaddingRight(1)

	OverlayHint = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

// swatchColors maps the named background colors to terminal colors
var swatchColors = map[string]lipgloss.Color{
	"white": lipgloss.Color("#FFFFFF"),
	"black": lipgloss.Color("#000000"),
	"grey":  lipgloss.Color("#808080"),
	"gray":  lipgloss.Color("#808080"),
}

// Swatch renders a small preview of a background style, width cells wide
func Swatch(style string, width int) string {
	if width < 1 {
		width = 1
	}
	bg := config.ParseBackground(style)

	pattern := "█"
	if bg.Checkerboard {
		pattern = "▚"
	}
	cells := ""
	for i := 0; i < width; i++ {
		cells += pattern
	}

	if bg.Color == "transparent" {
		fg := lipgloss.Color("#3F3F46")
		if bg.Checkerboard {
			fg = lipgloss.Color("#9CA3AF")
		}
		return lipgloss.NewStyle().Foreground(fg).Render(cells)
	}

	color, ok := swatchColors[bg.Color]
	if !ok {
		color = lipgloss.Color(bg.Color)
	}
	s := lipgloss.NewStyle().Foreground(color)
	if bg.Checkerboard {
		s = s.Background(lipgloss.Color("#9CA3AF"))
	}
	return s.Render(cells)
}

// SwatchWidth derives the swatch width from the configured image size
func SwatchWidth(imageSize int) int {
	w := imageSize / 50
	if w < 1 {
		return 1
	}
	if w > 6 {
		return 6
	}
	return w
}

// FormatCount formats a count with its noun, pluralized
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
