package app

import (
	"github.com/zhubert/sketchlab/internal/generation"
	"github.com/zhubert/sketchlab/internal/studio"
)

// StartupModalMsg shows the welcome modal on first launch
type StartupModalMsg struct{}

// GenerationCompletedMsg carries a finished attempt back to the orchestrator
type GenerationCompletedMsg struct {
	Outcome studio.Outcome
}

// SketchLoadedMsg is sent when a picked or pasted sketch has been read
type SketchLoadedMsg struct {
	Upload generation.Upload
	Path   string // Empty for pasted sketches
	Err    error
}

// DownloadCompletedMsg reports the files written by a download
type DownloadCompletedMsg struct {
	Paths []string
	Err   error
}

// NoClipboardImageMsg is sent when a paste finds no image on the clipboard
type NoClipboardImageMsg struct{}
