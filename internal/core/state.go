package core

import (
	"time"

	"github.com/lumipallolabs/imagedive/internal/config"
	"github.com/lumipallolabs/imagedive/internal/model"
)

// ScanPhase represents the current phase of scanning
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseIdle:
		return ""
	case PhaseScanning:
		return "Scanning"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase       ScanPhase
	StartTime   time.Time
	Duration    time.Duration
	RootsDone   int
	RootsTotal  int
	ImagesFound int
}

// IsScanning returns true while a scan runs
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.Phase != PhaseScanning {
		return s.Duration
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Roots      []string
	Settings   config.Settings
	Scan       ScanState
	Collection model.ProjectDirCollection // delimiter applied
	Scanned    bool
	Error      error
}
