package modals

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/sketchlab/internal/keys"
)

// updateForm forwards msg to a huh form owned by a modal. Enter and Escape
// are left to the app, which submits or dismisses the modal itself.
// Forms are initialized lazily on their first message.
func updateForm(form *huh.Form, initialized *bool, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if s := key.String(); s == keys.Enter || s == keys.Escape {
			return form, nil
		}
	}

	var initCmd tea.Cmd
	if !*initialized {
		*initialized = true
		initCmd = form.Init()
	}

	model, cmd := form.Update(msg)
	return model.(*huh.Form), tea.Batch(initCmd, cmd)
}

// ModalTheme styles settings forms with the palette installed by SetStyles.
// The terminal's own background is ignored; sketchlab's dark mode decides
// the palette before the form is built.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused = focusedFieldStyles(t.Focused)
		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}

// focusedFieldStyles covers the field kinds the settings form uses: text
// inputs and the multi-select of toggles.
func focusedFieldStyles(f huh.FieldStyles) huh.FieldStyles {
	f.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)
	f.Card = f.Base
	f.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	f.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)
	f.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" !")
	f.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

	f.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
	f.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
	f.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
	f.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

	f.MultiSelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("› ")
	f.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	f.SelectedPrefix = lipgloss.NewStyle().Foreground(ColorSecondary).SetString("[on]  ")
	f.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)
	f.UnselectedPrefix = lipgloss.NewStyle().Foreground(ColorTextMuted).SetString("[off] ")
	return f
}
