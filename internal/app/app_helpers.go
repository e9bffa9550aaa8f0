package app

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/sketchlab/internal/download"
	"github.com/zhubert/sketchlab/internal/generation"
	"github.com/zhubert/sketchlab/internal/sketch"
	"github.com/zhubert/sketchlab/internal/studio"
	"github.com/zhubert/sketchlab/internal/ui"
)

// downloadTarget picks the result the download keys act on: the selected
// gallery entry in the gallery, otherwise the current result.
func (m *Model) downloadTarget() (r studio.Result, original, generated string, ok bool) {
	sess := m.Session()
	if sess.ViewMode() == studio.ViewGallery {
		history := sess.History()
		if len(history) == 0 {
			return studio.Result{}, "", "", false
		}
		i := min(m.gallery.Selected(), len(history)-1)
		original, generated = download.GalleryNames(i)
		return history[i], original, generated, true
	}

	current := sess.Current()
	if current == nil {
		return studio.Result{}, "", "", false
	}
	original, generated = download.ResultNames()
	return *current, original, generated, true
}

// startGeneration begins an attempt for the selected sketch and returns
// the command that runs it.
func (m *Model) startGeneration() (tea.Cmd, error) {
	if m.sketch == nil {
		return nil, fmt.Errorf("no sketch selected")
	}
	attempt, err := m.orchestrator.Begin(m.ctx, *m.sketch)
	if err != nil {
		return nil, err
	}
	m.spinner.Start(m.now())
	return generateCmd(attempt), nil
}

// setSketch makes up the selected sketch.
func (m *Model) setSketch(up generation.Upload, path string) {
	m.sketch = &up
	m.summary = &ui.SketchSummary{Name: up.Name, Size: len(up.Data)}
	if info, err := sketch.Describe(up.Data); err == nil {
		m.summary.Info = info.String()
	}
	if path != "" {
		m.pickerDir = filepath.Dir(path)
	}
	m.log.Info("sketch selected", "name", up.Name, "bytes", len(up.Data), "type", up.MediaType)
}

// describePaths renders saved paths relative to the download directory.
func (m *Model) describePaths(paths []string) string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return strings.Join(names, ", ")
}
