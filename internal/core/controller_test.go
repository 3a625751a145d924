package core

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/protocol"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

type fakeOpener struct {
	opened   []string
	revealed []string
}

func (f *fakeOpener) OpenInApp(path string) error {
	f.opened = append(f.opened, path)
	return nil
}

func (f *fakeOpener) Reveal(path string) error {
	f.revealed = append(f.revealed, path)
	return nil
}

var pathLocator = scanner.LocatorFunc(func(p string) string { return "loc:" + p })

func newTestController(t *testing.T, settings config.Settings) (*Controller, *fakeClipboard, *fakeOpener) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range []string{"/proj/A/top.png", "/proj/A/icons/x.svg", "/proj/B/pics/y.jpg", "/proj/C/notes.md"} {
		require.NoError(t, afero.WriteFile(fsys, f, []byte("x"), 0o644))
	}

	clip := &fakeClipboard{}
	opener := &fakeOpener{}
	c := NewController(Options{
		Roots:     []string{"/proj/A", "/proj/B", "/proj/C"},
		Config:    config.NewManager(filepath.Join(t.TempDir(), "imagedive.yaml"), settings),
		Locator:   pathLocator,
		Clipboard: clip,
		Opener:    opener,
		FS:        fsys,
	})
	t.Cleanup(func() { _ = c.Stop() })
	return c, clip, opener
}

func TestScanCollectsEnabledRoots(t *testing.T) {
	c, _, _ := newTestController(t, config.Defaults)

	coll, err := c.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/proj/", coll.CommonBase)
	require.Len(t, coll.Dirs, 2)
	assert.Equal(t, "A", coll.Dirs[0].Base)
	assert.Equal(t, "B", coll.Dirs[1].Base)

	state := c.State()
	assert.True(t, state.Scanned)
	assert.Equal(t, PhaseComplete, state.Scan.Phase)
	assert.Equal(t, 3, state.Scan.ImagesFound)
	assert.Equal(t, map[string]bool{"/proj/A": true, "/proj/B": true, "/proj/C": true}, state.Settings.IncludeProjectFolders)
}

func TestApplyConfigDisablesProject(t *testing.T) {
	c, _, _ := newTestController(t, config.Defaults)

	s := c.Settings()
	s.IncludeProjectFolders["/proj/A"] = false
	assert.True(t, c.ApplyConfig(s))

	coll, err := c.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, coll.Dirs, 1)
	assert.Equal(t, "/proj/B", coll.Root(0))

	s = c.Settings()
	s.ImageBackground = "black"
	assert.False(t, c.ApplyConfig(s))
}

func TestDisplayAppliesDelimiter(t *testing.T) {
	settings := config.Defaults.Clone()
	settings.PathDelimiter = " > "
	c, _, _ := newTestController(t, settings)

	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, " > proj > ", c.Display().CommonBase)
	assert.Equal(t, "/proj/", c.Collection().CommonBase)
}

func TestStartScanStreamsEvents(t *testing.T) {
	c, _, _ := newTestController(t, config.Defaults)

	var events []Event
	for ev := range c.StartScan(context.Background()) {
		events = append(events, ev)
	}

	require.NotEmpty(t, events)
	assert.IsType(t, ScanStartedEvent{}, events[0])
	done, ok := events[len(events)-1].(ScanCompletedEvent)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, 3, done.Collection.ImageCount())

	c.FinalizeScan()
	assert.Equal(t, PhaseIdle, c.State().Scan.Phase)
}

func TestCancelledScanKeepsPreviousResult(t *testing.T) {
	c, _, _ := newTestController(t, config.Defaults)
	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, c.Collection().ImageCount())
}

func TestConcurrentScansDoNotInterleave(t *testing.T) {
	c, _, _ := newTestController(t, config.Defaults)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coll, err := c.Scan(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 3, coll.ImageCount())
		}()
	}
	wg.Wait()
}

func TestCopyActions(t *testing.T) {
	c, clip, _ := newTestController(t, config.Defaults)
	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	loc := "loc:" + filepath.Join("/proj/A", "icons", "x.svg")

	text, err := c.CopyName(loc)
	require.NoError(t, err)
	assert.Equal(t, "x.svg", text)

	text, err = c.CopyRelativePath(loc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/icons", "x.svg"), text)

	text, err = c.CopyFullPath(loc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj/A", "icons", "x.svg"), text)

	assert.Len(t, clip.copied, 3)

	_, err = c.CopyName("loc:/nope.png")
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = c.Copy(loc, protocol.CopyTarget("parent"))
	assert.ErrorIs(t, err, protocol.ErrInvalidTarget)
}

func TestCopyUsesDelimiter(t *testing.T) {
	settings := config.Defaults.Clone()
	settings.PathDelimiter = "|"
	c, _, _ := newTestController(t, settings)
	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	text, err := c.CopyFullPath("loc:" + filepath.Join("/proj/B", "pics", "y.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "|proj|B|pics|y.jpg", text)
}

func TestCopyClipboardError(t *testing.T) {
	c, clip, _ := newTestController(t, config.Defaults)
	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	clip.err = errors.New("no terminal")
	_, err = c.CopyName("loc:" + filepath.Join("/proj/A", "top.png"))
	assert.Error(t, err)
}

func TestOpenAndReveal(t *testing.T) {
	c, _, opener := newTestController(t, config.Defaults)
	_, err := c.Scan(context.Background())
	require.NoError(t, err)

	loc := "loc:" + filepath.Join("/proj/A", "top.png")
	require.NoError(t, c.OpenImage(loc))
	require.NoError(t, c.RevealImage(loc))
	assert.Equal(t, []string{filepath.Join("/proj/A", "top.png")}, opener.opened)
	assert.Equal(t, []string{filepath.Join("/proj/A", "top.png")}, opener.revealed)

	assert.ErrorIs(t, c.OpenImage("loc:/missing.png"), ErrImageNotFound)
}

func TestHost(t *testing.T) {
	var h Host[*int]
	a, b := new(int), new(int)

	got, created := h.Show(func() *int { return a })
	assert.True(t, created)
	assert.Same(t, a, got)

	got, created = h.Show(func() *int { return b })
	assert.False(t, created)
	assert.Same(t, a, got)

	h.Release(b)
	_, active := h.Current()
	assert.True(t, active)

	h.Release(a)
	_, active = h.Current()
	assert.False(t, active)

	got, created = h.Show(func() *int { return b })
	assert.True(t, created)
	assert.Same(t, b, got)
}
