package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"gopkg.in/yaml.v3"
)

// fileSettings is the on-disk layout
type fileSettings struct {
	IncludeFolders  []string        `yaml:"includeFolders"`
	ExcludeFolders  []string        `yaml:"excludeFolders"`
	ProjectFolders  []ProjectFolder `yaml:"projectFolders,omitempty"`
	ImageBackground string          `yaml:"imageBackground"`
	ImageSize       int             `yaml:"imageSize"`
	LazyLoading     bool            `yaml:"lazyLoading"`
	PathDelimiter   string          `yaml:"pathDelimiter"`
	SortGroups      bool            `yaml:"sortGroups"`
	ParallelScan    bool            `yaml:"parallelScan"`
}

// Manager holds the live settings and writes them back to disk
type Manager struct {
	path         string
	settings     Settings
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager saving to path
func NewManager(path string, s Settings) *Manager {
	return &Manager{
		path:         path,
		settings:     s.Normalize(),
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// Path returns the file settings are saved to
func (m *Manager) Path() string {
	return m.path
}

// Settings returns a copy of the current settings
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone()
}

// Update replaces the settings and schedules a debounced save. It reports
// whether the change affects which images a scan finds.
func (m *Manager) Update(s Settings) bool {
	s = s.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	changed := FilterChanged(m.settings, s)
	m.settings = s
	m.dirty = true

	// Cancel any pending save timer
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			if err := m.saveLocked(); err != nil {
				logging.Debug.Printf("save settings: %v", err)
			}
		}
	})

	return changed
}

// Reconcile syncs the project folder entries with the workspace roots
func (m *Manager) Reconcile(roots []string) bool {
	s := m.Settings()
	if !s.ReconcileProjectFolders(roots) {
		return false
	}
	m.Update(s)
	return true
}

// Save writes settings to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves settings without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	data, err := yaml.Marshal(fileSettings{
		IncludeFolders:  m.settings.IncludeFolders,
		ExcludeFolders:  m.settings.ExcludeFolders,
		ProjectFolders:  fromProjectFolders(m.settings.IncludeProjectFolders),
		ImageBackground: m.settings.ImageBackground,
		ImageSize:       m.settings.ImageSize,
		LazyLoading:     m.settings.LazyLoading,
		PathDelimiter:   m.settings.PathDelimiter,
		SortGroups:      m.settings.SortGroups,
		ParallelScan:    m.settings.ParallelScan,
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	lock := flock.New(m.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", m.path, err)
	}
	defer lock.Unlock()

	if err := atomicWrite(m.path, data); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
