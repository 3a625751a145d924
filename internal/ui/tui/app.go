package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imagedive/internal/core"
	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/protocol"
	"github.com/lumipallolabs/imagedive/internal/viewstate"
)

// Panel identifies which panel is active
type Panel int

const (
	PanelGroups Panel = iota
	PanelOverview
)

// Message types for Bubble Tea
type (
	scanStartMsg         struct{}
	spinnerTickMsg       struct{}
	scanCompleteDelayMsg struct{ collection model.ProjectDirCollection }
	statusClearMsg       struct{ version int }
)

// scanEventMsg wraps any scan event for continued listening
type scanEventMsg struct {
	event core.Event
}

// Spinner frames - modern braille dots spinner
var spinnerFrames = []string{
	"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
}

// Timing constants
const (
	spinnerTickInterval = 80 * time.Millisecond
	borderRotationSpeed = 33 // milliseconds per frame
	completeDelay       = 500 * time.Millisecond
	statusTimeout       = 3 * time.Second
)

// Options configures the App
type Options struct {
	Version    string
	Controller *core.Controller
	// Views persists expansion state between sessions; nil disables it
	Views *viewstate.Store
}

// App is the main TUI application model
type App struct {
	ctrl   *core.Controller
	views  *viewstate.Store
	ctx    context.Context
	cancel context.CancelFunc

	// UI Components
	header      Header
	groups      GroupPanel
	overview    OverviewPanel
	help        HelpOverlay
	folders     FolderSelector
	backgrounds BackgroundSelector
	filter      textinput.Model
	types       *TypeCache
	keys        KeyMap
	version     string

	// UI state (TUI-specific)
	activePanel   Panel
	filtering     bool
	err           error
	statusVersion int
	loaded        bool

	// Event channel (for continuing to listen after each event)
	scanEventCh <-chan core.Event

	// Dimensions
	width           int
	height          int
	rightPanelWidth int
}

// NewApp creates a new application instance
func NewApp(opts Options) App {
	ctx, cancel := context.WithCancel(context.Background())

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by name"
	filter.CharLimit = 128

	app := App{
		ctrl:        opts.Controller,
		views:       opts.Views,
		ctx:         ctx,
		cancel:      cancel,
		header:      NewHeader(opts.Version),
		groups:      NewGroupPanel(),
		overview:    NewOverviewPanel(),
		help:        NewHelpOverlay(opts.Version),
		folders:     NewFolderSelector(),
		backgrounds: NewBackgroundSelector(),
		filter:      filter,
		types:       NewTypeCache(typeCacheSize),
		keys:        DefaultKeyMap(),
		version:     opts.Version,
		activePanel: PanelGroups,
	}

	settings := app.ctrl.Settings()
	app.groups.SetBackground(settings.ImageBackground, settings.ImageSize)
	app.groups.SetFocused(true)
	app.overview.SetFocused(false)
	app.header.SetScanning(true, "")

	return app
}

// Run starts the program in the alternate screen and blocks until it quits
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return func() tea.Msg {
		return scanStartMsg{}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case scanStartMsg:
		return a.startScan()

	case scanEventMsg:
		return a.handleScanEvent(msg.event)

	case scanCompleteDelayMsg:
		return a.finalizeScan(msg.collection)

	case statusClearMsg:
		if msg.version == a.statusVersion {
			a.header.SetStatus("")
		}
		return a, nil

	case spinnerTickMsg:
		if a.ctrl.State().Scan.IsScanning() || !a.loaded {
			return a, tickSpinner()
		}
		return a, nil
	}

	if a.filtering {
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(msg)
		return a, cmd
	}
	return a, nil
}

func tickSpinner() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// handleScanEvent processes scan events and continues listening
func (a App) handleScanEvent(event core.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case core.ScanProgressEvent:
		progress := fmt.Sprintf("%d/%d folders, %s", e.RootsDone, e.RootsTotal, FormatCount(e.ImagesFound, "image"))
		a.header.SetScanning(true, progress)
		return a, a.listenForScanEvents()

	case core.ScanCompletedEvent:
		if e.Err != nil {
			a.err = e.Err
			a.header.SetScanning(false, "")
			a.ctrl.FinalizeScan()
			a.loaded = true
			return a, nil
		}
		// Show "Complete" briefly before showing data
		return a, tea.Tick(completeDelay, func(t time.Time) tea.Msg {
			return scanCompleteDelayMsg{collection: e.Collection}
		})

	default:
		return a, a.listenForScanEvents()
	}
}

// startScan begins the scanning process
func (a App) startScan() (tea.Model, tea.Cmd) {
	if a.ctrl.State().Scan.IsScanning() {
		return a, nil
	}

	a.scanEventCh = a.ctrl.StartScan(a.ctx)
	a.header.SetScanning(true, "")
	a.err = nil

	return a, tea.Batch(a.listenForScanEvents(), tickSpinner())
}

// listenForScanEvents creates a command that listens for scan events
func (a App) listenForScanEvents() tea.Cmd {
	if a.scanEventCh == nil {
		return nil
	}
	eventCh := a.scanEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return nil // Channel closed
		}
		return scanEventMsg{event: event}
	}
}

// finalizeScan folds the collection and shows it, keeping the expansion
// state of the previous scan or, on the first one, of the last session
func (a App) finalizeScan(coll model.ProjectDirCollection) (tea.Model, tea.Cmd) {
	a.ctrl.FinalizeScan()

	settings := a.ctrl.Settings()
	tree := grouper.Fold(coll, grouper.Options{SortByPath: settings.SortGroups})

	var prev grouper.State
	if a.groups.Tree() != nil {
		prev = a.groups.State()
	} else {
		prev = a.loadViewState(tree)
	}

	a.groups.SetTree(tree, prev)
	a.header.SetScanning(false, "")
	a.header.SetCounts(coll.CommonBase, tree.ImageCount(), tree.GroupCount(), len(tree.Projects))
	a.loaded = true
	a.err = nil
	a.syncSelection()
	a.overview.Refresh()
	a.updateLayout()

	logging.Debug.Printf("[TUI] showing %d images in %d groups", tree.ImageCount(), tree.GroupCount())
	return a, nil
}

// loadViewState reads the saved expansion state of this workspace
func (a App) loadViewState(tree *grouper.Tree) grouper.State {
	if a.views == nil {
		return nil
	}
	snap, err := a.views.Load(a.ctrl.Roots())
	if err != nil {
		if !errors.Is(err, viewstate.ErrNoSnapshot) {
			logging.Debug.Printf("[TUI] view state not restored: %v", err)
		}
		return nil
	}
	return snap.State(tree)
}

// saveViewState writes the current expansion state of this workspace
func (a App) saveViewState() {
	if a.views == nil || a.groups.Tree() == nil {
		return
	}
	snap := viewstate.FromState(a.ctrl.Roots(), a.groups.State())
	if err := a.views.Save(snap); err != nil {
		logging.Debug.Printf("[TUI] view state not saved: %v", err)
	}
}

// quit persists state and stops the program
func (a App) quit() (tea.Model, tea.Cmd) {
	a.cancel()
	a.saveViewState()
	if err := a.ctrl.Stop(); err != nil {
		logging.Debug.Printf("[TUI] settings not saved: %v", err)
	}
	return a, tea.Quit
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}

	if a.folders.IsVisible() {
		return a.handleFolderKey(msg)
	}

	if a.backgrounds.IsVisible() {
		return a.handleBackgroundKey(msg)
	}

	if a.filtering {
		return a.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Filter):
		a.filtering = true
		cmd := a.filter.Focus()
		a.updateLayout()
		return a, cmd

	case key.Matches(msg, a.keys.Background):
		a.backgrounds.Open(a.ctrl.Settings().ImageBackground)
		return a, nil

	case key.Matches(msg, a.keys.Folders):
		if len(a.ctrl.Roots()) > 0 {
			a.folders.Open(a.ctrl.Roots(), a.ctrl.Settings().IncludeProjectFolders)
		}
		return a, nil

	case key.Matches(msg, a.keys.Rescan):
		return a.startScan()

	case key.Matches(msg, a.keys.Tab):
		if a.activePanel == PanelGroups {
			a.activePanel = PanelOverview
			a.groups.SetFocused(false)
			a.overview.SetFocused(true)
			if a.overview.Selected() == nil {
				a.overview.SelectFirst()
			}
		} else {
			a.activePanel = PanelGroups
			a.groups.SetFocused(true)
			a.overview.SetFocused(false)
		}
		return a, nil

	case key.Matches(msg, a.keys.CopyName):
		return a.copySelected(protocol.CopyName)

	case key.Matches(msg, a.keys.CopyRel):
		return a.copySelected(protocol.CopyRelativePath)

	case key.Matches(msg, a.keys.CopyFull):
		return a.copySelected(protocol.CopyFullPath)

	case key.Matches(msg, a.keys.Open):
		if img, ok := a.groups.SelectedImage(); ok {
			a.report(a.ctrl.OpenImage(img.Locator), "Opened "+img.Name)
			return a, a.clearStatusLater()
		}
		return a, nil

	case key.Matches(msg, a.keys.Reveal):
		if img, ok := a.groups.SelectedImage(); ok {
			a.report(a.ctrl.RevealImage(img.Locator), "Revealed "+img.Name)
			return a, a.clearStatusLater()
		}
		return a, nil

	case key.Matches(msg, a.keys.ExpandAll):
		a.groups.SetAll(true)
		a.syncSelection()
		a.updateLayout()
		return a, nil

	case key.Matches(msg, a.keys.CollapseAll):
		a.groups.SetAll(false)
		a.syncSelection()
		a.updateLayout()
		return a, nil
	}

	if a.activePanel == PanelOverview {
		return a.handleOverviewKey(msg)
	}
	return a.handleGroupKey(msg)
}

// handleGroupKey moves through the group panel
func (a App) handleGroupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.groups.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.groups.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.groups.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.groups.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.groups.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.groups.GoToBottom()
	case key.Matches(msg, a.keys.Left), key.Matches(msg, a.keys.Back):
		a.groups.Collapse()
		a.updateLayout()
	case key.Matches(msg, a.keys.Right):
		a.groups.Expand()
		a.updateLayout()
	case key.Matches(msg, a.keys.Enter):
		a.groups.Toggle()
		a.updateLayout()
	default:
		return a, nil
	}
	a.syncSelection()
	return a, nil
}

// handleOverviewKey moves between overview blocks
func (a App) handleOverviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.overview.MoveToBlock(0, -1)
	case key.Matches(msg, a.keys.Down):
		a.overview.MoveToBlock(0, 1)
	case key.Matches(msg, a.keys.Left):
		a.overview.MoveToBlock(-1, 0)
	case key.Matches(msg, a.keys.Right):
		a.overview.MoveToBlock(1, 0)
	case key.Matches(msg, a.keys.Enter):
		// Jump to the group in the list
		if g := a.overview.Selected(); g != nil && a.groups.SelectGroup(g.Key) {
			a.activePanel = PanelGroups
			a.groups.SetFocused(true)
			a.overview.SetFocused(false)
			a.updateLayout()
		}
	case key.Matches(msg, a.keys.Back):
		a.activePanel = PanelGroups
		a.groups.SetFocused(true)
		a.overview.SetFocused(false)
	}
	return a, nil
}

// handleFilterKey edits the filter; the list narrows as the user types
func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.filtering = false
		a.filter.Blur()
		a.updateLayout()
		return a, nil
	case tea.KeyEsc:
		a.filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		a.groups.SetFilter("")
		a.syncSelection()
		a.updateLayout()
		return a, nil
	case tea.KeyCtrlC:
		return a.quit()
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.groups.SetFilter(a.filter.Value())
	a.syncSelection()
	a.updateLayout()
	return a, cmd
}

// handleFolderKey drives the project folder selector
func (a App) handleFolderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.folders.SetVisible(false)
	case key.Matches(msg, a.keys.Up):
		a.folders.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.folders.MoveDown()
	case key.Matches(msg, a.keys.Toggle):
		a.folders.Toggle()
	case key.Matches(msg, a.keys.Enter):
		a.folders.SetVisible(false)
		s := a.ctrl.Settings()
		s.IncludeProjectFolders = a.folders.Enabled()
		if a.ctrl.ApplyConfig(s) {
			return a.startScan()
		}
	}
	return a, nil
}

// handleBackgroundKey drives the background selector
func (a App) handleBackgroundKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.backgrounds.SetVisible(false)
	case key.Matches(msg, a.keys.Up):
		a.backgrounds.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.backgrounds.MoveDown()
	case key.Matches(msg, a.keys.Enter):
		a.backgrounds.SetVisible(false)
		s := a.ctrl.Settings()
		s.ImageBackground = a.backgrounds.Selected()
		a.ctrl.ApplyConfig(s)
		a.groups.SetBackground(s.ImageBackground, s.ImageSize)
		a.updateLayout()
	}
	return a, nil
}

// copySelected copies the selected image's name or path
func (a App) copySelected(target protocol.CopyTarget) (tea.Model, tea.Cmd) {
	img, ok := a.groups.SelectedImage()
	if !ok {
		return a, nil
	}
	text, err := a.ctrl.Copy(img.Locator, target)
	a.report(err, "Copied "+text)
	return a, a.clearStatusLater()
}

// report shows an action's outcome in the header
func (a *App) report(err error, success string) {
	if err != nil {
		logging.Debug.Printf("[TUI] action failed: %v", err)
		a.err = err
		a.header.SetStatus("")
		return
	}
	a.err = nil
	a.header.SetStatus(success)
}

// clearStatusLater removes the header status after a while
func (a *App) clearStatusLater() tea.Cmd {
	a.statusVersion++
	version := a.statusVersion
	return tea.Tick(statusTimeout, func(t time.Time) tea.Msg {
		return statusClearMsg{version: version}
	})
}

// syncSelection follows the group panel selection in the overview
func (a *App) syncSelection() {
	project := a.groups.SelectedProject()
	if project == nil && a.groups.Tree() != nil && len(a.groups.Tree().Projects) > 0 {
		project = a.groups.Tree().Projects[0]
	}
	a.overview.SetProject(project)
	a.overview.SetSelected(a.groups.SelectedGroup())
}

// updateLayout calculates component sizes
func (a *App) updateLayout() {
	headerHeight := 2
	helpBarHeight := 1
	infoBarHeight := 2

	panelHeight := a.height - headerHeight - helpBarHeight
	if a.filtering || a.groups.Filter() != "" {
		panelHeight--
	}
	if a.err != nil {
		panelHeight--
	}
	if panelHeight < 1 {
		panelHeight = 1
	}

	groupWidth := a.groups.RequiredWidth()
	maxGroupWidth := a.width / 2
	if groupWidth > maxGroupWidth {
		groupWidth = maxGroupWidth
	}
	if groupWidth < 20 {
		groupWidth = 20
	}

	a.header.SetWidth(a.width)
	a.groups.SetSize(groupWidth, panelHeight)
	a.rightPanelWidth = a.width - groupWidth
	a.overview.SetSize(a.rightPanelWidth, panelHeight-infoBarHeight)
	a.filter.Width = a.width - 4
	a.help.SetSize(a.width, a.height)
	a.folders.SetSize(a.width, a.height)
	a.backgrounds.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	state := a.ctrl.State()

	if a.width == 0 || a.height == 0 {
		if state.Scan.IsScanning() {
			return "Scanning images..."
		}
		return "Loading..."
	}

	// Overlays
	if a.help.IsVisible() {
		return a.renderOverlay(a.help.View())
	}
	if a.folders.IsVisible() {
		return a.renderOverlay(a.folders.View())
	}
	if a.backgrounds.IsVisible() {
		return a.renderOverlay(a.backgrounds.View())
	}

	var sections []string
	sections = append(sections, a.header.View())

	if a.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)
		sections = append(sections, errStyle.Render(fmt.Sprintf("Error: %v", a.err)))
	}

	if a.filtering || a.groups.Filter() != "" {
		sections = append(sections, " "+a.filter.View())
	}

	if state.Scan.Phase != core.PhaseIdle || !a.loaded {
		sections = append(sections, a.renderScanningPanel(state.Scan))
	} else {
		sections = append(sections, a.renderMainPanels())
	}

	sections = append(sections, HelpBar(a.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOverlay renders an overlay centered on screen
func (a App) renderOverlay(overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBackground),
	)
}

// renderScanningPanel renders the scanning progress panel
func (a App) renderScanningPanel(state core.ScanState) string {
	panelHeight := a.height - 4
	if panelHeight < 1 {
		panelHeight = 1
	}

	doneStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	spinnerStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	spinnerIdx := int(time.Now().UnixMilli()/spinnerTickInterval.Milliseconds()) % len(spinnerFrames)
	spinner := spinnerFrames[spinnerIdx]

	// Progress bar over project folders
	var progressBar string
	if state.RootsTotal > 0 {
		maxDots := 20
		numDots := state.RootsDone * maxDots / state.RootsTotal
		dotStyle := lipgloss.NewStyle().Foreground(ColorCyan)
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#3F3F46"))
		progressBar = " " + dotStyle.Render("[") + dotStyle.Render(strings.Repeat("·", numDots)) +
			emptyStyle.Render(strings.Repeat("·", maxDots-numDots)) + dotStyle.Render("]")
	}

	var logLines []string
	if state.Phase == core.PhaseComplete {
		logLines = append(logLines, fmt.Sprintf("  %s %s", doneStyle.Render("✓"), doneStyle.Render("Scanning images")))
		logLines = append(logLines, fmt.Sprintf("  %s %s", doneStyle.Render("✓"), doneStyle.Render("Complete")))
	} else {
		text := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render("Scanning images")
		logLines = append(logLines, fmt.Sprintf("  %s %s%s", spinnerStyle.Render(spinner), text, progressBar))
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	rootStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	imageStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Bold(true)

	logLines = append(logLines, "")
	logLines = append(logLines, fmt.Sprintf("    %s %s", labelStyle.Render("FOLDERS"), rootStyle.Render(fmt.Sprintf("%d / %d", state.RootsDone, state.RootsTotal))))
	logLines = append(logLines, fmt.Sprintf("    %s  %s", labelStyle.Render("IMAGES"), imageStyle.Render(fmt.Sprint(state.ImagesFound))))
	logLines = append(logLines, fmt.Sprintf("    %s    %s", labelStyle.Render("TIME"), timeStyle.Render(state.Elapsed().String())))

	innerContent := lipgloss.NewStyle().
		Padding(0, 3).
		Width(48).
		Render(strings.Join(logLines, "\n"))

	boxHeight := 9
	scanningBox := renderSpinningBorder(
		lipgloss.Place(48, boxHeight-2, lipgloss.Left, lipgloss.Center, innerContent),
		50, boxHeight, time.Now())

	return lipgloss.Place(a.width, panelHeight, lipgloss.Center, lipgloss.Center, scanningBox)
}

// renderMainPanels renders the group list and the overview
func (a App) renderMainPanels() string {
	rightPanel := lipgloss.JoinVertical(lipgloss.Left, a.infoBar(), a.overview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, a.groups.View(), rightPanel)
}

// infoBar describes the selected image, or the selected group
func (a App) infoBar() string {
	focused := a.activePanel == PanelOverview

	if img, ok := a.groups.SelectedImage(); ok {
		var typeLabel string
		if ref, found := a.ctrl.FindImage(img.Locator); found {
			typeLabel = a.types.Label(ref.AbsPath())
		}
		rel, err := a.ctrl.CopyText(img.Locator, protocol.CopyRelativePath)
		if err != nil {
			rel = img.Path
		}
		return detailsBar(img, rel, typeLabel, focused)
	}

	borderColor := lipgloss.Color("#2D6A6A")
	if focused {
		borderColor = ColorCyan
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var content string
	switch {
	case a.groups.SelectedGroup() != nil:
		g := a.groups.SelectedGroup()
		content = " " + g.Title + dimStyle.Render(" │ "+FormatCount(len(g.Filter(a.groups.Filter())), "image")) + " "
	case a.groups.SelectedProject() != nil:
		p := a.groups.SelectedProject()
		content = " " + p.Root + dimStyle.Render(" │ "+FormatCount(len(p.Groups), "group")) + " "
	default:
		content = " " + dimStyle.Render(FormatCount(a.groups.VisibleImages(), "image")) + " "
	}

	contentWidth := lipgloss.Width(content)
	topBorder := borderStyle.Render("╭" + strings.Repeat("─", contentWidth) + "╮")
	middleLine := borderStyle.Render("│") + content + borderStyle.Render("│")
	return topBorder + "\n" + middleLine
}

// renderSpinningBorder draws a box with spinning gradient border
func renderSpinningBorder(content string, width, height int, t time.Time) string {
	shades := []string{
		"#00FFFF", "#30EBE0", "#5EEAD4", "#70E0D8", "#85D5E0", "#9AC5E8", "#A8B0F0", "#B89AF8",
		"#C084FC", "#C880F0", "#D080E8", "#D87CDE", "#E07CD4", "#F079CC", "#FF79C6", "#F079CC",
		"#E07CD4", "#D87CDE", "#D080E8", "#C880F0", "#C084FC", "#B89AF8", "#A8B0F0", "#9AC5E8",
		"#85D5E0", "#70E0D8", "#5EEAD4", "#30EBE0",
	}

	innerW := width - 2
	innerH := height - 2
	perimeter := 2*innerW + 2*innerH + 4

	offset := int(t.UnixMilli()/borderRotationSpeed) % perimeter

	getColor := func(pos int) lipgloss.Style {
		adjustedPos := (pos - offset + perimeter) % perimeter
		shadeIdx := (adjustedPos * len(shades) / perimeter) % len(shades)
		return lipgloss.NewStyle().Foreground(lipgloss.Color(shades[shadeIdx]))
	}

	const (
		topLeft     = "╭"
		topRight    = "╮"
		bottomLeft  = "╰"
		bottomRight = "╯"
		horizontal  = "─"
		vertical    = "│"
	)

	var result strings.Builder
	pos := 0

	result.WriteString(getColor(pos).Render(topLeft))
	pos++
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(pos).Render(horizontal))
		pos++
	}
	result.WriteString(getColor(pos).Render(topRight))
	pos++
	result.WriteString("\n")

	contentLines := strings.Split(content, "\n")
	for len(contentLines) < innerH {
		contentLines = append(contentLines, "")
	}

	for i := 0; i < innerH; i++ {
		result.WriteString(getColor(perimeter - 1 - i).Render(vertical))

		line := contentLines[i]
		if lineWidth := lipgloss.Width(line); lineWidth < innerW {
			line += strings.Repeat(" ", innerW-lineWidth)
		}
		result.WriteString(line)

		result.WriteString(getColor(pos).Render(vertical))
		pos++
		result.WriteString("\n")
	}

	bottomStart := pos
	result.WriteString(getColor(perimeter - innerH - 1).Render(bottomLeft))
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(bottomStart + innerW - i).Render(horizontal))
	}
	result.WriteString(getColor(bottomStart).Render(bottomRight))

	return result.String()
}
