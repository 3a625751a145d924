package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/core"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/lumipallolabs/imagedive/internal/viewstate"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClipboard struct {
	copied []string
}

func (r *recordingClipboard) Copy(text string) error {
	r.copied = append(r.copied, text)
	return nil
}

type recordingOpener struct {
	opened   []string
	revealed []string
}

func (r *recordingOpener) OpenInApp(path string) error {
	r.opened = append(r.opened, path)
	return nil
}

func (r *recordingOpener) Reveal(path string) error {
	r.revealed = append(r.revealed, path)
	return nil
}

type testApp struct {
	app      App
	clip     *recordingClipboard
	opener   *recordingOpener
	settings *config.Manager
	views    *viewstate.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range []string{"/proj/A/top.png", "/proj/A/icons/x.svg", "/proj/B/pics/y.jpg"} {
		require.NoError(t, afero.WriteFile(fsys, f, []byte("x"), 0o644))
	}

	dir := t.TempDir()
	tc := &testApp{
		clip:     &recordingClipboard{},
		opener:   &recordingOpener{},
		settings: config.NewManager(filepath.Join(dir, "imagedive.yaml"), config.Defaults),
		views:    viewstate.New(filepath.Join(dir, "state")),
	}
	ctrl := core.NewController(core.Options{
		Roots:     []string{"/proj/A", "/proj/B"},
		Config:    tc.settings,
		Locator:   scanner.LocatorFunc(func(p string) string { return "loc:" + p }),
		Clipboard: tc.clip,
		Opener:    tc.opener,
		FS:        fsys,
	})
	t.Cleanup(func() { _ = ctrl.Stop() })

	tc.app = NewApp(Options{Version: "test", Controller: ctrl, Views: tc.views})
	tc.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return tc
}

func (tc *testApp) send(msg tea.Msg) tea.Cmd {
	m, cmd := tc.app.Update(msg)
	tc.app = m.(App)
	return cmd
}

func (tc *testApp) press(keys string) {
	switch keys {
	case "down":
		tc.send(tea.KeyMsg{Type: tea.KeyDown})
	case "enter":
		tc.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		tc.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "space":
		tc.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	default:
		for _, r := range keys {
			tc.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
}

// scan runs a synchronous scan and delivers it the way the event loop would
func (tc *testApp) scan(t *testing.T) {
	t.Helper()
	_, err := tc.app.ctrl.Scan(context.Background())
	require.NoError(t, err)
	tc.send(scanCompleteDelayMsg{collection: tc.app.ctrl.Display()})
}

func TestAppShowsScanResult(t *testing.T) {
	tc := newTestApp(t)
	assert.Contains(t, tc.app.View(), "Scanning images")

	tc.scan(t)

	view := tc.app.View()
	assert.Contains(t, view, "3 images")
	assert.Contains(t, view, "top.png")
	assert.Contains(t, view, "/pics")
	assert.Contains(t, view, "/proj/")
}

func TestAppCopyAndOpenActions(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	// project A, group "/", top.png
	tc.press("down")
	tc.press("down")
	img, ok := tc.app.groups.SelectedImage()
	require.True(t, ok)
	require.Equal(t, "top.png", img.Name)

	tc.press("c")
	tc.press("Y")
	tc.press("o")
	tc.press("space")

	assert.Equal(t, []string{"top.png", filepath.Join("/proj/A", "top.png")}, tc.clip.copied)
	assert.Equal(t, []string{filepath.Join("/proj/A", "top.png")}, tc.opener.revealed)
	assert.Equal(t, []string{filepath.Join("/proj/A", "top.png")}, tc.opener.opened)
	assert.Nil(t, tc.app.err)
}

func TestAppActionsIgnoreHeaders(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("c")
	tc.press("o")
	assert.Empty(t, tc.clip.copied)
	assert.Empty(t, tc.opener.revealed)
}

func TestAppFilter(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("/")
	require.True(t, tc.app.filtering)
	tc.press("y.jpg")
	assert.Equal(t, "y.jpg", tc.app.groups.Filter())
	assert.Equal(t, 1, tc.app.groups.VisibleImages())

	tc.press("enter")
	assert.False(t, tc.app.filtering)
	assert.Equal(t, "y.jpg", tc.app.groups.Filter())

	tc.press("/")
	tc.press("esc")
	assert.Equal(t, "", tc.app.groups.Filter())
	assert.Equal(t, 3, tc.app.groups.VisibleImages())
}

func TestAppBackgroundSelector(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("b")
	require.True(t, tc.app.backgrounds.IsVisible())
	assert.Contains(t, tc.app.View(), "Image Background")
	tc.press("down")
	tc.press("enter")

	assert.False(t, tc.app.backgrounds.IsVisible())
	assert.Equal(t, config.Backgrounds[1], tc.settings.Settings().ImageBackground)
}

func TestAppFolderSelectorDisablesRoot(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("f")
	require.True(t, tc.app.folders.IsVisible())
	tc.press("space")
	cmd := tc.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, tc.app.folders.IsVisible())
	assert.False(t, tc.settings.Settings().IncludeProjectFolders["/proj/A"])
	assert.True(t, tc.settings.Settings().IncludeProjectFolders["/proj/B"])
	assert.NotNil(t, cmd, "changing project folders starts a rescan")
}

func TestAppQuitSavesViewState(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("-")
	cmd := tc.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	snap, err := tc.views.Load([]string{"/proj/A", "/proj/B"})
	require.NoError(t, err)
	require.NotEmpty(t, snap.Expanded)
	for _, expanded := range snap.Expanded {
		assert.False(t, expanded)
	}

	// A new session starts collapsed
	next := newTestApp(t)
	next.views = tc.views
	next.app.views = tc.views
	next.scan(t)
	for _, p := range next.app.groups.Tree().Projects {
		assert.False(t, p.Expanded)
	}
}

func TestAppTabSwitchesToOverview(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanelOverview, tc.app.activePanel)
	require.NotNil(t, tc.app.overview.Selected())

	selected := tc.app.overview.Selected()
	tc.press("enter")
	assert.Equal(t, PanelGroups, tc.app.activePanel)
	assert.Equal(t, selected.Key, tc.app.groups.SelectedGroup().Key)
}

func TestAppHelpOverlay(t *testing.T) {
	tc := newTestApp(t)
	tc.scan(t)

	tc.press("?")
	assert.Contains(t, tc.app.View(), "Press any key to close")
	tc.press("x")
	assert.False(t, tc.app.help.IsVisible())
}
