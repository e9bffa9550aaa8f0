package app

import (
	"charm.land/bubbles/v2/filepicker"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/sketchlab/internal/clipboard"
	"github.com/zhubert/sketchlab/internal/keys"
	"github.com/zhubert/sketchlab/internal/sketch"
	"github.com/zhubert/sketchlab/internal/studio"
	"github.com/zhubert/sketchlab/internal/ui"
	"github.com/zhubert/sketchlab/internal/ui/modals"
)

// Shortcut categories, in help modal order
const (
	CategoryGenerator = "Generator"
	CategoryGallery   = "Gallery"
	CategoryViews     = "Views"
	CategoryGeneral   = "General"
)

var categoryOrder = []string{CategoryGenerator, CategoryGallery, CategoryViews, CategoryGeneral}

// Shortcut is a global key binding that can also be triggered from the
// help modal.
type Shortcut struct {
	Key         string
	DisplayKey  string // Shown in help instead of Key; display-only entries use just this
	Description string
	Category    string
	Handler     func(m *Model) (tea.Model, tea.Cmd)
	Condition   func(m *Model) bool // Optional guard, nil means always
}

// ShortcutRegistry holds every executable shortcut.
var ShortcutRegistry = []Shortcut{
	{Key: keys.Open, Description: "Open a sketch file", Category: CategoryGenerator, Handler: shortcutOpen},
	{Key: keys.CtrlV, Description: "Paste a sketch from the clipboard", Category: CategoryGenerator, Handler: shortcutPaste},
	{Key: keys.Enter, Description: "Generate from the selected sketch", Category: CategoryGenerator, Handler: shortcutGenerate,
		Condition: func(m *Model) bool {
			sess := m.Session()
			return sess.ViewMode() == studio.ViewGenerator && !sess.IsGenerating()
		}},
	{Key: keys.Clear, Description: "Clear the selected sketch", Category: CategoryGenerator, Handler: shortcutClear,
		Condition: func(m *Model) bool { return m.sketch != nil && !m.Session().IsGenerating() }},
	{Key: keys.Cancel, Description: "Cancel the running generation", Category: CategoryGenerator, Handler: shortcutCancel,
		Condition: func(m *Model) bool { return m.Session().IsGenerating() }},

	{Key: keys.DownloadOriginal, Description: "Download the original sketch", Category: CategoryGallery, Handler: shortcutDownloadOriginal},
	{Key: keys.DownloadGenerated, Description: "Download the generated image", Category: CategoryGallery, Handler: shortcutDownloadGenerated},
	{Key: keys.DownloadBoth, Description: "Download both images", Category: CategoryGallery, Handler: shortcutDownloadBoth},
	{Key: keys.CopyRef, Description: "Copy the generated image reference", Category: CategoryGallery, Handler: shortcutCopyRef},

	{Key: keys.Gallery, Description: "Toggle the gallery", Category: CategoryViews, Handler: shortcutToggleGallery},
	{Key: keys.Inspector, Description: "Inspect the last response", Category: CategoryViews, Handler: shortcutInspector},
	{Key: keys.Logs, Description: "View logs", Category: CategoryViews, Handler: shortcutLogs},

	{Key: keys.DarkMode, Description: "Toggle dark mode", Category: CategoryGeneral, Handler: shortcutDarkMode},
	{Key: keys.Settings, Description: "Settings", Category: CategoryGeneral, Handler: shortcutSettings},
	{Key: keys.Quit, Description: "Quit", Category: CategoryGeneral, Handler: shortcutQuit},
}

// helpShortcut is handled outside the registry since its handler reads
// ShortcutRegistry.
var helpShortcut = Shortcut{
	Key:         keys.Help,
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Select a gallery entry", Category: CategoryGallery},
	{DisplayKey: "Esc", Description: "Back to the generator or dismiss a failure", Category: CategoryViews},
	{DisplayKey: "ctrl+c", Description: "Quit", Category: CategoryGeneral},
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			m.log.Debug("shortcut guard failed", "key", key)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getHelpSections groups the registry by category for the help modal.
func (m *Model) getHelpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		add(s)
	}
	add(helpShortcut)
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutOpen(m *Model) (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = sketch.AcceptedExtensions
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.CurrentDirectory = m.pickerDir
	m.picker = fp
	m.overlay = overlayPicker
	m.updateSizes()
	return m, m.picker.Init()
}

func shortcutPaste(m *Model) (tea.Model, tea.Cmd) {
	return m, pasteSketchCmd()
}

func shortcutGenerate(m *Model) (tea.Model, tea.Cmd) {
	if m.sketch == nil {
		return m, m.ShowFlashWarning("Select a sketch first (o to open, ctrl+v to paste)")
	}
	cmd, err := m.startGeneration()
	if err != nil {
		return m, m.ShowFlashWarning(err.Error())
	}
	return m, tea.Batch(cmd, ui.SpinnerTick())
}

func shortcutClear(m *Model) (tea.Model, tea.Cmd) {
	m.sketch = nil
	m.summary = nil
	return m, nil
}

func shortcutCancel(m *Model) (tea.Model, tea.Cmd) {
	if m.orchestrator.Cancel() {
		return m, m.ShowFlashInfo("Canceling...")
	}
	return m, nil
}

func shortcutDownloadOriginal(m *Model) (tea.Model, tea.Cmd) {
	r, original, _, ok := m.downloadTarget()
	if !ok {
		return m, m.ShowFlashWarning("Nothing to download yet")
	}
	return m, downloadCmd(m.ctx, m.saver, r.OriginalRef.String(), original)
}

func shortcutDownloadGenerated(m *Model) (tea.Model, tea.Cmd) {
	r, _, generated, ok := m.downloadTarget()
	if !ok {
		return m, m.ShowFlashWarning("Nothing to download yet")
	}
	return m, downloadCmd(m.ctx, m.saver, r.GeneratedRef, generated)
}

func shortcutDownloadBoth(m *Model) (tea.Model, tea.Cmd) {
	r, original, generated, ok := m.downloadTarget()
	if !ok {
		return m, m.ShowFlashWarning("Nothing to download yet")
	}
	return m, downloadBothCmd(m.ctx, m.saver, r, original, generated)
}

func shortcutCopyRef(m *Model) (tea.Model, tea.Cmd) {
	r, _, _, ok := m.downloadTarget()
	if !ok {
		return m, m.ShowFlashWarning("Nothing to copy yet")
	}
	if err := clipboard.WriteText(r.GeneratedRef); err != nil {
		m.log.Warn("copy failed", "error", err)
		return m, m.ShowFlashError("Could not copy to the clipboard")
	}
	return m, m.ShowFlashSuccess("Copied generated image reference")
}

func shortcutToggleGallery(m *Model) (tea.Model, tea.Cmd) {
	if m.orchestrator.ToggleGallery() == studio.ViewGallery {
		m.gallery.Reset()
	}
	return m, nil
}

func shortcutInspector(m *Model) (tea.Model, tea.Cmd) {
	raw := m.Session().LastResponse()
	if raw == nil {
		return m, m.ShowFlashInfo("No response to inspect yet")
	}
	m.inspector = ui.NewInspector(raw)
	m.overlay = overlayInspector
	m.updateSizes()
	return m, nil
}

func shortcutLogs(m *Model) (tea.Model, tea.Cmd) {
	m.logViewer = ui.NewLogViewer(ui.GetLogFiles())
	m.overlay = overlayLogs
	m.updateSizes()
	return m, nil
}

func shortcutDarkMode(m *Model) (tea.Model, tea.Cmd) {
	dark := m.orchestrator.ToggleDarkMode()
	ui.SetDarkMode(dark)
	m.config.SetDarkMode(dark)
	if m.inspector != nil {
		m.inspector.Refresh()
	}
	if m.logViewer != nil {
		m.logViewer.Refresh()
	}
	return m, m.saveConfigOrFlash()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewSettingsState(
		m.config.GetEndpointURL(),
		m.config.GetRequestTimeoutSeconds(),
		m.config.GetSavedDownloadDir(),
		m.config.GetNotificationsEnabled(),
	))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpStateFromSections(m.getHelpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}
