package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/sketchlab/internal/clipboard"
	"github.com/zhubert/sketchlab/internal/download"
	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/notification"
	"github.com/zhubert/sketchlab/internal/sketch"
	"github.com/zhubert/sketchlab/internal/studio"
)

// generateCmd runs an attempt off the update loop.
func generateCmd(attempt *studio.Attempt) tea.Cmd {
	return func() tea.Msg {
		return GenerationCompletedMsg{Outcome: attempt.Run()}
	}
}

// loadSketchCmd reads a picked file.
func loadSketchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		up, err := sketch.Load(path)
		return SketchLoadedMsg{Upload: up, Path: path, Err: err}
	}
}

// pasteSketchCmd reads an image from the clipboard.
func pasteSketchCmd() tea.Cmd {
	return func() tea.Msg {
		img, err := clipboard.ReadImage()
		if err != nil {
			return SketchLoadedMsg{Err: err}
		}
		if img == nil {
			return NoClipboardImageMsg{}
		}
		up, err := sketch.FromClipboard(img)
		return SketchLoadedMsg{Upload: up, Err: err}
	}
}

// downloadCmd saves a single reference.
func downloadCmd(ctx context.Context, saver *download.Saver, ref, name string) tea.Cmd {
	return func() tea.Msg {
		path, err := saver.Save(ctx, ref, name)
		if err != nil {
			return DownloadCompletedMsg{Err: err}
		}
		return DownloadCompletedMsg{Paths: []string{path}}
	}
}

// downloadBothCmd saves the original and generated images of r.
func downloadBothCmd(ctx context.Context, saver *download.Saver, r studio.Result, originalName, generatedName string) tea.Cmd {
	return func() tea.Msg {
		paths, err := saver.SaveBoth(ctx, r, originalName, generatedName)
		if err != nil {
			return DownloadCompletedMsg{Err: err}
		}
		return DownloadCompletedMsg{Paths: paths[:]}
	}
}

// notifyCmd sends a desktop notification for a finished attempt. Canceled
// attempts are not announced.
func notifyCmd(tr studio.Transition, f *studio.Failure, sourceName string) tea.Cmd {
	return func() tea.Msg {
		switch tr {
		case studio.Succeeded:
			_ = notification.GenerationCompleted(sourceName)
		case studio.Failed:
			if f != nil && !pkgerrors.Is(f.Err, pkgerrors.KindCanceled) {
				_ = notification.GenerationFailed(f.Message())
			}
		}
		return nil
	}
}
