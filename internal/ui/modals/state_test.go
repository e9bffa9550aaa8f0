package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

// =============================================================================
// HelpState Tests
// =============================================================================

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Generator",
			Shortcuts: []HelpShortcut{
				{Key: "o", Desc: "open sketch"},
				{Key: "enter", Desc: "generate"},
			},
		},
		{
			Title: "Views",
			Shortcuts: []HelpShortcut{
				{Key: "g", Desc: "toggle gallery"},
				{Key: "d", Desc: "toggle dark mode"},
			},
		},
	}
}

func TestNewHelpStateFromSections_SelectsFirstShortcut(t *testing.T) {
	state := NewHelpStateFromSections(testSections())

	sc := state.GetSelectedShortcut()
	if sc == nil {
		t.Fatal("expected a shortcut to be selected, got a section header")
	}
	if sc.Key != "o" {
		t.Errorf("expected first shortcut 'o', got %q", sc.Key)
	}
}

func TestHelpState_TitleAndHelp(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	if state.Title() != "Keyboard Shortcuts" {
		t.Errorf("expected title 'Keyboard Shortcuts', got %q", state.Title())
	}
	if !strings.Contains(state.Help(), "Esc") {
		t.Errorf("help text should mention Esc, got %q", state.Help())
	}
}

func TestHelpState_Render(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	state.SetSize(60, 20)

	rendered := state.Render()
	for _, want := range []string{"Keyboard Shortcuts", "Generator", "open sketch", "generate"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered help should contain %q", want)
		}
	}
}

func TestHelpState_NavigationSkipsHeaders(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	state.SetSize(60, 20)

	// o -> enter -> (Views header skipped) -> g
	state.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	state.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	sc := state.GetSelectedShortcut()
	if sc == nil {
		t.Fatal("selection landed on a section header")
	}
	if sc.Key != "g" {
		t.Errorf("expected 'g' after two downs, got %q", sc.Key)
	}
}

func TestHelpState_EnterTriggersShortcut(t *testing.T) {
	state := NewHelpStateFromSections(testSections())

	_, cmd := state.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from Enter")
	}
	msg, ok := cmd().(HelpShortcutTriggeredMsg)
	if !ok {
		t.Fatalf("expected HelpShortcutTriggeredMsg, got %T", cmd())
	}
	if msg.Key != "o" {
		t.Errorf("expected triggered key 'o', got %q", msg.Key)
	}
}

// =============================================================================
// WelcomeState Tests
// =============================================================================

func TestWelcomeState_Render(t *testing.T) {
	state := NewWelcomeState("http://localhost:8000/generate_json")

	rendered := state.Render()
	if !strings.Contains(rendered, "Welcome to sketchlab!") {
		t.Error("welcome modal should contain its title")
	}
	if !strings.Contains(rendered, "http://localhost:8000/generate_json") {
		t.Error("welcome modal should show the endpoint")
	}

	next, cmd := state.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if next != state || cmd != nil {
		t.Error("welcome modal should ignore input")
	}
}
