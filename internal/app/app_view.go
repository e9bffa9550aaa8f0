package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/sketchlab/internal/studio"
	"github.com/zhubert/sketchlab/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update footer context for conditional bindings
	m.updateFooterContext()

	// Modals replace the whole screen
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.renderBody(),
		m.footer.View(),
	)
}

func (m *Model) bodyHeight() int {
	return max(m.height-ui.HeaderHeight-ui.FooterHeight, 1)
}

func (m *Model) renderBody() string {
	height := m.bodyHeight()
	var body string

	switch m.overlay {
	case overlayPicker:
		title := ui.PanelTitleStyle.Render("Open sketch  " + ui.LabelStyle.Render(m.picker.CurrentDirectory))
		body = lipgloss.JoinVertical(lipgloss.Left, title, m.picker.View())
	case overlayLogs:
		body = m.logViewer.View()
	case overlayInspector:
		body = m.inspector.View()
	default:
		sess := m.Session()
		if sess.ViewMode() == studio.ViewGallery {
			body = m.gallery.View(sess.History(), m.width, height)
		} else {
			body = ui.RenderGenerator(m.width, height, m.generatorState(sess))
		}
	}

	return lipgloss.NewStyle().Width(m.width).Height(height).MaxHeight(height).Render(body)
}

// generatorState snapshots the session for the Generator view.
func (m *Model) generatorState(sess *studio.Session) ui.GeneratorState {
	st := ui.GeneratorState{
		Sketch:     m.summary,
		Generating: sess.IsGenerating(),
		Current:    sess.Current(),
		Failure:    sess.Failure(),
	}
	if st.Generating {
		st.Spinner = m.spinner.View("Generating...", m.now())
	}
	return st
}

// updateFooterContext syncs the header and footer with the session.
func (m *Model) updateFooterContext() {
	sess := m.Session()
	generating := sess.IsGenerating()

	mode := ui.FooterGenerator
	viewName := sess.ViewMode().String()
	switch m.overlay {
	case overlayPicker:
		viewName = "Open sketch"
	case overlayLogs:
		mode = ui.FooterLogs
		viewName = "Logs"
	case overlayInspector:
		mode = ui.FooterInspector
		viewName = "Inspector"
	default:
		if sess.ViewMode() == studio.ViewGallery {
			mode = ui.FooterGallery
		}
	}

	m.header.SetViewName(viewName)
	m.header.SetBusy(generating)
	m.footer.SetContext(mode, generating, m.sketch != nil, sess.Current() != nil)
}

// updateSizes propagates the terminal size to every component.
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	height := m.bodyHeight()
	if m.overlay == overlayPicker {
		m.picker.SetHeight(max(height-ui.TitleHeight-1, 1))
	}
	if m.logViewer != nil {
		m.logViewer.SetSize(m.width, height)
	}
	if m.inspector != nil {
		m.inspector.SetSize(m.width, height)
	}
}
