package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/lumipallolabs/imagedive/internal/pathutil"
	"github.com/lumipallolabs/imagedive/internal/protocol"
	"github.com/lumipallolabs/imagedive/internal/scanner"
	"github.com/spf13/afero"
)

// ErrImageNotFound is returned for a locator the last scan did not produce
var ErrImageNotFound = errors.New("image not found")

// Clipboard receives copied text
type Clipboard interface {
	Copy(text string) error
}

// Opener hands files to the desktop
type Opener interface {
	OpenInApp(path string) error
	Reveal(path string) error
}

// Options configures a Controller
type Options struct {
	Roots     []string
	Config    *config.Manager
	Locator   scanner.Locator
	Clipboard Clipboard
	Opener    Opener
	// FS is walked by the sequential scanner; nil means the OS filesystem
	FS afero.Fs
}

// ImageRef is an image together with the root it was found under
type ImageRef struct {
	Root  string
	Image model.ImageFile
}

// AbsPath returns the absolute path of the image file
func (r ImageRef) AbsPath() string {
	return filepath.Join(r.Root, r.Image.Path, r.Image.Name)
}

// Controller manages the core application logic without UI dependencies
type Controller struct {
	mu sync.RWMutex
	// scanMu serializes scans so their results never interleave
	scanMu sync.Mutex

	roots      []string
	collection model.ProjectDirCollection
	scanned    bool
	scan       ScanState
	lastErr    error

	cfg       *config.Manager
	locator   scanner.Locator
	fs        afero.Fs
	clipboard Clipboard
	opener    Opener
}

// NewController creates a controller for the workspace roots
func NewController(opts Options) *Controller {
	roots := make([]string, 0, len(opts.Roots))
	for _, r := range opts.Roots {
		roots = append(roots, filepath.Clean(r))
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewManager(filepath.Join(config.DefaultDir(), config.FileName+".yaml"), config.Defaults)
	}
	if cfg.Reconcile(roots) {
		logging.Debug.Printf("[Controller] project folders reconciled with %d roots", len(roots))
	}

	loc := opts.Locator
	if loc == nil {
		loc = scanner.FileURI
	}

	return &Controller{
		roots:      roots,
		collection: model.NewCollection(),
		cfg:        cfg,
		locator:    loc,
		fs:         opts.FS,
		clipboard:  opts.Clipboard,
		opener:     opts.Opener,
	}
}

// Roots returns the workspace roots
func (c *Controller) Roots() []string {
	return slices.Clone(c.roots)
}

// Settings returns the current settings
func (c *Controller) Settings() config.Settings {
	return c.cfg.Settings()
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	settings := c.cfg.Settings()
	return AppState{
		Roots:      slices.Clone(c.roots),
		Settings:   settings,
		Scan:       c.scan,
		Collection: c.collection.WithDelimiter(settings.PathDelimiter),
		Scanned:    c.scanned,
		Error:      c.lastErr,
	}
}

// Collection returns the raw result of the last scan
func (c *Controller) Collection() model.ProjectDirCollection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collection
}

// Display returns the last scan with the configured delimiter applied
func (c *Controller) Display() model.ProjectDirCollection {
	delim := c.cfg.Settings().PathDelimiter
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collection.WithDelimiter(delim)
}

// ApplyConfig stores new settings and reports whether a rescan is needed
func (c *Controller) ApplyConfig(s config.Settings) bool {
	s.ReconcileProjectFolders(c.roots)
	changed := c.cfg.Update(s)
	logging.Debug.Printf("[Controller] settings applied, filter changed: %v", changed)
	return changed
}

// newScanner picks the walker for the current settings
func (c *Controller) newScanner(parallel bool) scanner.Scanner {
	if parallel && c.fs == nil {
		return scanner.NewFastWalker(0, c.locator)
	}
	return scanner.NewWalker(c.fs, c.locator)
}

// Scan walks every enabled root and stores the result. Concurrent calls
// queue; each runs to completion before the next starts.
func (c *Controller) Scan(ctx context.Context) (model.ProjectDirCollection, error) {
	return c.runLocked(ctx, nil)
}

func (c *Controller) runLocked(ctx context.Context, onProgress func(scanner.Progress)) (model.ProjectDirCollection, error) {
	c.scanMu.Lock()
	defer c.scanMu.Unlock()

	settings := c.cfg.Settings()
	roots := settings.EnabledRoots(c.roots)

	c.mu.Lock()
	c.scan = ScanState{
		Phase:      PhaseScanning,
		StartTime:  time.Now(),
		RootsTotal: len(roots),
	}
	c.mu.Unlock()

	logging.Debug.Printf("[Controller] Starting scan of %d roots", len(roots))

	collector := scanner.NewCollector(c.newScanner(settings.ParallelScan))
	collector.OnProgress = func(p scanner.Progress) {
		c.mu.Lock()
		c.scan.RootsDone = p.RootsDone
		c.scan.ImagesFound = p.ImagesFound
		c.mu.Unlock()
		if onProgress != nil {
			onProgress(p)
		}
	}

	coll := collector.Collect(ctx, roots, settings.Filters())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scan.Phase = PhaseComplete
	c.scan.Duration = time.Since(c.scan.StartTime)

	if err := ctx.Err(); err != nil {
		c.lastErr = err
		return coll, fmt.Errorf("scan: %w", err)
	}

	c.collection = coll
	c.scanned = true
	c.lastErr = nil
	logging.Debug.Printf("[Controller] Scan complete: %d images in %d dirs", coll.ImageCount(), len(coll.Dirs))
	return coll, nil
}

// StartScan runs a scan in the background and streams its events. The
// channel is closed once the scan is done.
func (c *Controller) StartScan(ctx context.Context) <-chan Event {
	eventCh := make(chan Event, 100)
	go c.runScan(ctx, eventCh)
	return eventCh
}

// runScan executes the scan in a goroutine
func (c *Controller) runScan(ctx context.Context, eventCh chan Event) {
	defer close(eventCh)

	eventCh <- ScanStartedEvent{Roots: c.cfg.Settings().EnabledRoots(c.roots)}

	coll, err := c.runLocked(ctx, func(p scanner.Progress) {
		select {
		case eventCh <- ScanProgressEvent{
			RootsDone:   p.RootsDone,
			RootsTotal:  p.RootsTotal,
			ImagesFound: p.ImagesFound,
			CurrentRoot: p.CurrentRoot,
		}:
		default:
			// Channel full, drop progress
		}
	})
	if err != nil {
		eventCh <- ScanCompletedEvent{Err: err}
		eventCh <- ErrorEvent{Err: err}
		return
	}

	eventCh <- ScanCompletedEvent{Collection: coll.WithDelimiter(c.cfg.Settings().PathDelimiter)}
}

// FinalizeScan returns the scan state to idle after the UI showed completion
func (c *Controller) FinalizeScan() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scan.Phase == PhaseComplete {
		c.scan.Phase = PhaseIdle
	}
}

// FindImage resolves a locator against the last scan
func (c *Controller) FindImage(locator string) (ImageRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, img, ok := c.collection.Find(locator)
	if !ok {
		return ImageRef{}, false
	}
	return ImageRef{Root: c.collection.Root(i), Image: img}, true
}

// CopyText returns the text a copy action puts on the clipboard
func (c *Controller) CopyText(locator string, target protocol.CopyTarget) (string, error) {
	ref, ok := c.FindImage(locator)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrImageNotFound, locator)
	}

	delim := c.cfg.Settings().PathDelimiter
	switch target {
	case protocol.CopyName, "":
		return ref.Image.Name, nil
	case protocol.CopyRelativePath:
		return pathutil.Join(delim, ref.Image.Path, ref.Image.Name), nil
	case protocol.CopyFullPath:
		return pathutil.Join(delim, ref.Root, ref.Image.Path, ref.Image.Name), nil
	default:
		return "", fmt.Errorf("%w: %q", protocol.ErrInvalidTarget, target)
	}
}

// Copy puts the name or path of an image on the clipboard
func (c *Controller) Copy(locator string, target protocol.CopyTarget) (string, error) {
	text, err := c.CopyText(locator, target)
	if err != nil {
		return "", err
	}
	if c.clipboard == nil {
		return "", errors.New("no clipboard available")
	}
	if err := c.clipboard.Copy(text); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return text, nil
}

// CopyName copies the image's file name
func (c *Controller) CopyName(locator string) (string, error) {
	return c.Copy(locator, protocol.CopyName)
}

// CopyRelativePath copies the image path relative to its root
func (c *Controller) CopyRelativePath(locator string) (string, error) {
	return c.Copy(locator, protocol.CopyRelativePath)
}

// CopyFullPath copies the absolute image path
func (c *Controller) CopyFullPath(locator string) (string, error) {
	return c.Copy(locator, protocol.CopyFullPath)
}

// OpenImage opens the image in its default application
func (c *Controller) OpenImage(locator string) error {
	ref, ok := c.FindImage(locator)
	if !ok {
		return fmt.Errorf("%w: %s", ErrImageNotFound, locator)
	}
	if c.opener == nil {
		return errors.New("no opener available")
	}
	return c.opener.OpenInApp(ref.AbsPath())
}

// RevealImage shows the image in the file manager
func (c *Controller) RevealImage(locator string) error {
	ref, ok := c.FindImage(locator)
	if !ok {
		return fmt.Errorf("%w: %s", ErrImageNotFound, locator)
	}
	if c.opener == nil {
		return errors.New("no opener available")
	}
	return c.opener.Reveal(ref.AbsPath())
}

// Stop flushes pending settings
func (c *Controller) Stop() error {
	return c.cfg.Close()
}
