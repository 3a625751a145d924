package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Header displays the workspace and counts (2 lines)
type Header struct {
	commonBase   string
	images       int
	groups       int
	projects     int
	width        int
	scanning     bool
	scanProgress string
	status       string
	version      string
}

// NewHeader creates a new header component
func NewHeader(version string) Header {
	return Header{version: version}
}

// SetCounts sets the totals shown on the first line
func (h *Header) SetCounts(commonBase string, images, groups, projects int) {
	h.commonBase = commonBase
	h.images = images
	h.groups = groups
	h.projects = projects
}

// SetScanning sets the scanning state
func (h *Header) SetScanning(scanning bool, progress string) {
	h.scanning = scanning
	h.scanProgress = progress
}

// ScanProgress returns the current scan progress text
func (h Header) ScanProgress() string {
	return h.scanProgress
}

// SetStatus sets the transient message shown on the second line
func (h *Header) SetStatus(status string) {
	h.status = status
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// Update handles messages
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	return h, nil
}

// View renders the header
// Line 1: ImageDive 0.1.0                 120 images | 14 groups | 2 projects
// Line 2: Base: /home/u/proj/  f folders                         Copied a.png
func (h Header) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")) // lighter dim gray
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	appName := nameStyle.Render("ImageDive") + dimStyle.Render(" "+h.version)

	var stats string
	if h.scanning {
		stats = lipgloss.NewStyle().Foreground(ColorCyan).Render("Scanning… " + h.scanProgress)
	} else {
		sep := dimStyle.Render(" | ")
		stats = StatsStyle.Render(FormatCount(h.images, "image")) + sep +
			StatsStyle.Render(FormatCount(h.groups, "group")) + sep +
			StatsStyle.Render(FormatCount(h.projects, "project"))
	}

	line1 := spread(appName, stats, h.width)

	base := h.commonBase
	if base == "" {
		base = "-"
	}
	left := dimStyle.Render("Base: ") + valueStyle.Render(base)

	var right string
	if h.status != "" {
		right = lipgloss.NewStyle().Foreground(ColorSuccess).Render(h.status)
	}

	// Add the "f folders" hint only if there's room
	hint := dimStyle.Render("  ") + KeyHint.Render("f") + dimStyle.Render(" folders")
	if h.width-lipgloss.Width(left)-lipgloss.Width(right)-4 >= lipgloss.Width(hint) {
		left += hint
	}

	line2 := spread(left, right, h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

// spread places left and right at opposite ends of a width-wide line
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
