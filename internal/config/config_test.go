package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	InitFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s, savePath, err := Load(newCmd(t), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{}, s.IncludeFolders)
	assert.Equal(t, []string{"node_modules"}, s.ExcludeFolders)
	assert.Equal(t, "transparent", s.ImageBackground)
	assert.Equal(t, 100, s.ImageSize)
	assert.True(t, s.LazyLoading)
	assert.True(t, s.SortGroups)
	assert.False(t, s.ParallelScan)
	assert.Equal(t, "Default", s.PathDelimiter)
	assert.Equal(t, FileName+".yaml", filepath.Base(savePath))
}

func TestLoadWorkspaceFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ws := t.TempDir()
	yaml := `
includeFolders: "assets;/public/"
excludeFolders:
  - node_modules
  - dist
imageSize: 64
pathDelimiter: " > "
projectFolders:
  - path: /Work/App
    enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(ws, "imagedive.yaml"), []byte(yaml), 0o644))

	s, savePath, err := Load(newCmd(t), ws)
	require.NoError(t, err)

	assert.Equal(t, []string{"assets", "/public/"}, s.IncludeFolders)
	assert.Equal(t, []string{"node_modules", "dist"}, s.ExcludeFolders)
	assert.Equal(t, 64, s.ImageSize)
	assert.Equal(t, " > ", s.PathDelimiter)
	assert.Equal(t, map[string]bool{"/Work/App": false}, s.IncludeProjectFolders)
	assert.Equal(t, filepath.Join(ws, "imagedive.yaml"), savePath)
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IMAGEDIVE_IMAGE_SIZE", "150")
	t.Setenv("IMAGEDIVE_EXCLUDE", "build;out")

	s, _, err := Load(newCmd(t, "--parallel", "--include", "img,icons", "--delimiter", "|"), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 150, s.ImageSize)
	assert.Equal(t, []string{"build", "out"}, s.ExcludeFolders)
	assert.Equal(t, []string{"img", "icons"}, s.IncludeFolders)
	assert.Equal(t, "|", s.PathDelimiter)
	assert.True(t, s.ParallelScan)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, _, err := Load(newCmd(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")), "")
	assert.Error(t, err)
}

func TestReconcileProjectFolders(t *testing.T) {
	s := Defaults.Clone()
	s.IncludeProjectFolders = map[string]bool{"/a": false, "/gone": true}

	changed := s.ReconcileProjectFolders([]string{"/a", "/b"})
	assert.True(t, changed)
	assert.Equal(t, map[string]bool{"/a": false, "/b": true}, s.IncludeProjectFolders)
	assert.False(t, s.ReconcileProjectFolders([]string{"/a", "/b"}))
	assert.Equal(t, []string{"/b"}, s.EnabledRoots([]string{"/a", "/b"}))
}

func TestFilterChanged(t *testing.T) {
	base := Defaults.Clone()

	same := base.Clone()
	same.ImageBackground = "black"
	same.ImageSize = 200
	assert.False(t, FilterChanged(base, same))

	exclude := base.Clone()
	exclude.ExcludeFolders = append(exclude.ExcludeFolders, "dist")
	assert.True(t, FilterChanged(base, exclude))

	projects := base.Clone()
	projects.IncludeProjectFolders["/p"] = false
	assert.True(t, FilterChanged(base, projects))
}

func TestManagerRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "imagedive.yaml")

	m := NewManager(path, Defaults)
	s := m.Settings()
	s.ImageBackground = "black;checkerboard"
	s.IncludeFolders = []string{"assets"}
	s.IncludeProjectFolders = map[string]bool{"/Proj/Web": false}
	assert.True(t, m.Update(s))
	require.NoError(t, m.Close())

	cmd := newCmd(t, "--config", path)
	loaded, savePath, err := Load(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, path, savePath)
	assert.Equal(t, "black;checkerboard", loaded.ImageBackground)
	assert.Equal(t, []string{"assets"}, loaded.IncludeFolders)
	assert.Equal(t, map[string]bool{"/Proj/Web": false}, loaded.IncludeProjectFolders)
}

func TestManagerSettingsIsACopy(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "c.yaml"), Defaults)
	s := m.Settings()
	s.ExcludeFolders[0] = "changed"
	assert.Equal(t, "node_modules", m.Settings().ExcludeFolders[0])
}

func TestNormalize(t *testing.T) {
	s := Settings{ImageSize: -3, IncludeFolders: []string{" a ", ""}}.Normalize()
	assert.Equal(t, 100, s.ImageSize)
	assert.Equal(t, "transparent", s.ImageBackground)
	assert.Equal(t, "Default", s.PathDelimiter)
	assert.Equal(t, []string{"a"}, s.IncludeFolders)
	assert.NotNil(t, s.IncludeProjectFolders)
}

func TestBackgrounds(t *testing.T) {
	assert.Equal(t, Background{Color: "white", Checkerboard: true}, ParseBackground("white;checkerboard"))
	assert.Equal(t, Background{Color: "#CCCCCC"}, ParseBackground("#CCCCCC"))
	assert.Equal(t, Background{Color: "transparent"}, ParseBackground(""))

	assert.Equal(t, "transparent;checkerboard", NextBackground("transparent"))
	assert.Equal(t, "transparent", NextBackground("#CCCCCC"))
	assert.Equal(t, "transparent", NextBackground("unknown"))
}
