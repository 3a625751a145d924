package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCacheDetectsOnce(t *testing.T) {
	calls := 0
	c := NewTypeCache(2)
	c.detect = func(path string) (string, error) {
		calls++
		return "PNG image/png", nil
	}

	assert.Equal(t, "PNG image/png", c.Label("/a.png"))
	assert.Equal(t, "PNG image/png", c.Label("/a.png"))
	assert.Equal(t, 1, calls)

	c.Label("/b.png")
	c.Label("/c.png") // evicts /a.png
	assert.Equal(t, 2, c.Len())
	c.Label("/a.png")
	assert.Equal(t, 4, calls)
}

func TestTypeCacheRemembersFailures(t *testing.T) {
	calls := 0
	c := NewTypeCache(0)
	c.detect = func(path string) (string, error) {
		calls++
		return "", errors.New("unreadable")
	}

	assert.Equal(t, "", c.Label("/gone.png"))
	assert.Equal(t, "", c.Label("/gone.png"))
	assert.Equal(t, 1, calls)
}

func TestDetectTypeSniffsContent(t *testing.T) {
	dir := t.TempDir()

	// PNG signature, named like a jpeg
	path := filepath.Join(dir, "actually-png.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))

	label, err := detectType(path)
	require.NoError(t, err)
	assert.Equal(t, "PNG image/png", label)

	_, err = detectType(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestDetailsBar(t *testing.T) {
	bar := detailsBar(model.ImageFile{Name: "a.png", Path: "/icons"}, "/icons/a.png", "PNG image/png", false)
	assert.Contains(t, bar, "a.png")
	assert.Contains(t, bar, "/icons/a.png")
	assert.Contains(t, bar, "PNG image/png")
}
