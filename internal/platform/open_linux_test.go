//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxCommands(t *testing.T) {
	old := releaseFile
	t.Cleanup(func() { releaseFile = old })

	releaseFile = filepath.Join(t.TempDir(), "missing")
	name, args, err := openCommand("/p/a.png")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"/p/a.png"}, args)

	name, args, err = revealCommand("/p/a.png")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"/p"}, args)

	releaseFile = filepath.Join(t.TempDir(), "osrelease")
	require.NoError(t, os.WriteFile(releaseFile, []byte("microsoft-standard"), 0o644))
	name, args, err = openCommand("/mnt/c/a&b.png")
	require.NoError(t, err)
	assert.Equal(t, "cmd.exe", name)
	assert.Equal(t, []string{"/c", "start", "", "/mnt/c/a^&b.png"}, args)
}
