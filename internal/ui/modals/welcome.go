package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// WelcomeState - State for the first-time user welcome modal
// =============================================================================

type WelcomeState struct {
	endpoint string
}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to sketchlab!" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(50).
		Render("sketchlab sends a sketch to an image generation service and keeps every result from this session in a gallery.")

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  o       Open a sketch\n  ctrl+v  Paste a sketch from the clipboard\n  enter   Generate\n  g       Show the gallery\n  ,       Settings")

	endpointLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Generation service:")

	endpoint := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Render("  " + s.endpoint)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		endpointLabel,
		endpoint,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState(endpoint string) *WelcomeState {
	return &WelcomeState{endpoint: endpoint}
}
