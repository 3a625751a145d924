package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/model"
)

const typeCacheSize = 256

// TypeCache remembers the sniffed type label of recently selected files
type TypeCache struct {
	cache  *lru.Cache[string, string]
	detect func(path string) (string, error)
}

// NewTypeCache creates a cache holding up to size labels
func NewTypeCache(size int) *TypeCache {
	if size <= 0 {
		size = typeCacheSize
	}
	cache, _ := lru.New[string, string](size)
	return &TypeCache{cache: cache, detect: detectType}
}

// Label returns the type label for path, sniffing the file on a miss.
// Unreadable files get an empty label, which is cached too.
func (c *TypeCache) Label(path string) string {
	if label, ok := c.cache.Get(path); ok {
		return label
	}
	label, err := c.detect(path)
	if err != nil {
		logging.Debug.Printf("[TUI] type detection failed for %s: %v", path, err)
		label = ""
	}
	c.cache.Add(path, label)
	return label
}

// Len returns the number of cached labels
func (c *TypeCache) Len() int {
	return c.cache.Len()
}

// detectType sniffs the file content with mimetype
func detectType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	ext := strings.ToUpper(strings.TrimPrefix(mtype.Extension(), "."))
	mime := mtype.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if ext == "" {
		return mime, nil
	}
	return ext + " " + mime, nil
}

// detailsBar renders the one-line summary of the selected image
func detailsBar(img model.ImageFile, relPath, typeLabel string, focused bool) string {
	borderColor := lipgloss.Color("#2D6A6A")
	if focused {
		borderColor = ColorCyan
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	sep := dimStyle.Render(" │ ")

	parts := []string{nameStyle.Render(img.Name)}
	parts = append(parts, sep, dimStyle.Render(relPath))
	if typeLabel != "" {
		parts = append(parts, sep, dimStyle.Render(typeLabel))
	}

	content := " " + strings.Join(parts, "") + " "
	contentWidth := lipgloss.Width(content)
	topBorder := borderStyle.Render("╭" + strings.Repeat("─", contentWidth) + "╮")
	middleLine := borderStyle.Render("│") + content + borderStyle.Render("│")

	return topBorder + "\n" + middleLine
}
