package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/sketchlab/internal/download"
	"github.com/zhubert/sketchlab/internal/keys"
	"github.com/zhubert/sketchlab/internal/studio"
	"github.com/zhubert/sketchlab/internal/ui"
	"github.com/zhubert/sketchlab/internal/ui/modals"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case StartupModalMsg:
		m.modal.Show(modals.NewWelcomeState(m.client.Endpoint()))
		return m, nil

	case GenerationCompletedMsg:
		return m, m.handleGenerationCompleted(msg)

	case SketchLoadedMsg:
		if msg.Err != nil {
			m.log.Warn("could not load sketch", "error", msg.Err)
			return m, m.ShowFlashError(msg.Err.Error())
		}
		m.setSketch(msg.Upload, msg.Path)
		return m, nil

	case NoClipboardImageMsg:
		return m, m.ShowFlashInfo("No image on the clipboard")

	case DownloadCompletedMsg:
		if msg.Err != nil {
			m.log.Error("download failed", "error", msg.Err)
			return m, m.ShowFlashError(msg.Err.Error())
		}
		return m, m.ShowFlashSuccess(fmt.Sprintf("Saved %s to %s", m.describePaths(msg.Paths), m.saver.Dir()))

	case ui.SpinnerTickMsg:
		if !m.Session().IsGenerating() {
			return m, nil
		}
		m.spinner.Advance()
		return m, ui.SpinnerTick()

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()

	case modals.HelpShortcutTriggeredMsg:
		m.modal.Hide()
		result, cmd, _ := m.ExecuteShortcut(msg.Key)
		return result, cmd

	case tea.PasteStartMsg:
		// Bracketed paste of an image shows up as an empty paste; check the
		// clipboard for image data.
		if m.modal.IsVisible() || m.overlay != overlayNone {
			return m, nil
		}
		return m, pasteSketchCmd()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Everything else belongs to whichever overlay is open, e.g. the file
	// picker's directory listings.
	return m, m.updateOverlay(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return shortcutQuit(m)
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch m.overlay {
	case overlayPicker:
		if key == keys.Escape {
			m.overlay = overlayNone
			return m, nil
		}
		return m, m.updatePicker(msg)

	case overlayLogs:
		if key == keys.Escape || key == keys.Logs {
			m.overlay = overlayNone
			m.logViewer = nil
			return m, nil
		}
		return m, m.logViewer.Update(msg)

	case overlayInspector:
		if key == keys.Escape || key == keys.Inspector {
			m.overlay = overlayNone
			m.inspector = nil
			return m, nil
		}
		return m, m.inspector.Update(msg)
	}

	sess := m.Session()
	if sess.ViewMode() == studio.ViewGallery {
		switch key {
		case keys.Escape:
			m.orchestrator.ShowGenerator()
			return m, nil
		case keys.Up, keys.VimUp:
			m.gallery.MoveUp()
			return m, nil
		case keys.Down, keys.Vim:
			m.gallery.MoveDown(sess.HistoryLen())
			return m, nil
		}
	} else if key == keys.Escape && sess.Failure() != nil {
		m.orchestrator.DismissFailure()
		return m, nil
	}

	result, cmd, _ := m.ExecuteShortcut(key)
	return result, cmd
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.WelcomeState:
		if key == keys.Escape || key == keys.Enter {
			m.modal.Hide()
			m.config.MarkWelcomeShown()
			return m, m.saveConfigOrFlash()
		}
		return m, nil

	case *modals.SettingsState:
		switch key {
		case keys.Escape:
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			if err := s.Validate(); err != nil {
				m.modal.SetError(err.Error())
				return m, nil
			}
			m.modal.Hide()
			return m, m.applySettings(s)
		}

	case *modals.HelpState:
		if key == keys.Escape && !s.IsFiltering() {
			m.modal.Hide()
			return m, nil
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// applySettings stores the settings form and rebuilds the collaborators
// that depend on it.
func (m *Model) applySettings(s *modals.SettingsState) tea.Cmd {
	m.config.SetEndpointURL(s.GetEndpoint())
	m.config.SetRequestTimeoutSeconds(s.GetTimeoutSeconds())
	m.config.SetDownloadDir(s.GetDownloadDir())
	m.config.SetNotificationsEnabled(s.GetNotificationsEnabled())
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}

	m.client = newClient(m.config)
	m.orchestrator.SetGenerator(m.activeGenerator())
	m.saver = download.NewSaver(m.config.GetDownloadDir(), m.orchestrator.Refs(), m.client)
	m.header.SetEndpoint(m.client.Endpoint())
	m.log.Info("settings saved", "endpoint", m.client.Endpoint(), "downloads", m.saver.Dir())
	return m.ShowFlashSuccess("Settings saved")
}

func (m *Model) handleGenerationCompleted(msg GenerationCompletedMsg) tea.Cmd {
	tr := m.orchestrator.Finish(msg.Outcome)
	if tr == studio.Discarded {
		return nil
	}

	sess := m.Session()
	m.gallery.Clamp(sess.HistoryLen())

	var cmds []tea.Cmd
	if m.config.GetNotificationsEnabled() {
		cmds = append(cmds, notifyCmd(tr, sess.Failure(), msg.Outcome.Upload.Name))
	}

	switch tr {
	case studio.Succeeded:
		cmds = append(cmds, m.ShowFlashSuccess("Generated from "+msg.Outcome.Upload.Name))
	case studio.Failed:
		if f := sess.Failure(); f != nil {
			cmds = append(cmds, m.ShowFlashError(f.Message()))
		}
	}
	return tea.Batch(cmds...)
}

// updatePicker forwards msg to the file picker and loads the chosen file.
func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.overlay = overlayNone
		return loadSketchCmd(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return tea.Batch(cmd, m.ShowFlashWarning(fmt.Sprintf("Not an accepted image type: %s", path)))
	}
	return cmd
}

func (m *Model) updateOverlay(msg tea.Msg) tea.Cmd {
	switch m.overlay {
	case overlayPicker:
		return m.updatePicker(msg)
	case overlayLogs:
		return m.logViewer.Update(msg)
	case overlayInspector:
		return m.inspector.Update(msg)
	}
	return nil
}
