package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// imageTree creates a root with two images and a config file next to it
func imageTree(t *testing.T) (root, cfg string) {
	t.Helper()
	dir := t.TempDir()
	root = filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "icons", "add.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	cfg = filepath.Join(dir, "imagedive.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("sortGroups: true\n"), 0o644))
	return root, cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "imagedive")
	assert.Contains(t, out, "scan")
	assert.Contains(t, out, "serve")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "scan")
	assert.Contains(t, names, "serve")

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, serve.Flags().Lookup("addr").DefValue)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestScanJSON(t *testing.T) {
	root, cfg := imageTree(t)

	out, err := execute(t, "scan", "--config", cfg, "--format", "json", root)
	require.NoError(t, err)

	var coll model.ProjectDirCollection
	require.NoError(t, json.Unmarshal([]byte(out), &coll))
	require.Len(t, coll.Dirs, 1)

	names := make([]string, 0)
	for _, img := range coll.Dirs[0].Images {
		names = append(names, img.Name)
		assert.True(t, strings.HasPrefix(img.Locator, "file://"), img.Locator)
	}
	assert.ElementsMatch(t, []string{"logo.png", "add.svg"}, names)
}

func TestScanYAML(t *testing.T) {
	root, cfg := imageTree(t)

	out, err := execute(t, "scan", "--config", cfg, "-f", "yaml", root)
	require.NoError(t, err)

	var coll model.ProjectDirCollection
	require.NoError(t, yaml.Unmarshal([]byte(out), &coll))
	require.Len(t, coll.Dirs, 1)
	assert.Len(t, coll.Dirs[0].Images, 2)
}

func TestScanText(t *testing.T) {
	root, cfg := imageTree(t)

	out, err := execute(t, "scan", "--config", cfg, root)
	require.NoError(t, err)
	assert.Contains(t, out, "logo.png")
	assert.Contains(t, out, "add.svg")
	assert.Contains(t, out, "2 images in 2 groups")
	assert.NotContains(t, out, "notes.txt")
	assert.NotContains(t, out, "\x1b[", "no color when not writing to a terminal")
}

func TestScanExcludeFlag(t *testing.T) {
	root, cfg := imageTree(t)

	out, err := execute(t, "scan", "--config", cfg, "--exclude", "icons", root)
	require.NoError(t, err)
	assert.Contains(t, out, "logo.png")
	assert.NotContains(t, out, "add.svg")
}

func TestScanRejectsUnknownFormat(t *testing.T) {
	root, cfg := imageTree(t)

	_, err := execute(t, "scan", "--config", cfg, "--format", "xml", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestResolveRoots(t *testing.T) {
	root, cfg := imageTree(t)

	roots, err := resolveRoots([]string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{root}, roots)

	_, err = resolveRoots([]string{cfg})
	assert.ErrorContains(t, err, "not a directory")

	_, err = resolveRoots([]string{filepath.Join(root, "missing")})
	assert.Error(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	roots, err = resolveRoots(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{wd}, roots)
}
