package core

import "github.com/lumipallolabs/imagedive/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Roots []string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted after each root is walked
type ScanProgressEvent struct {
	RootsDone   int
	RootsTotal  int
	ImagesFound int
	CurrentRoot string
}

func (ScanProgressEvent) isEvent() {}

// ScanCompletedEvent is emitted when scan finishes. Collection has the
// configured path delimiter applied.
type ScanCompletedEvent struct {
	Collection model.ProjectDirCollection
	Err        error
}

func (ScanCompletedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
