package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterMode selects which set of shortcuts the footer shows
type FooterMode int

const (
	FooterGenerator FooterMode = iota
	FooterGallery
	FooterLogs
	FooterInspector
)

// FlashType determines the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient notice that replaces the footer bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically so expired flash messages get cleared
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg after a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	mode         FooterMode
	generating   bool // Whether a generation is in flight
	hasSketch    bool // Whether a sketch is selected
	hasResult    bool // Whether a current result is shown
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "o", Desc: "open"},
			{Key: "ctrl+v", Desc: "paste"},
			{Key: "enter", Desc: "generate"},
			{Key: "x", Desc: "clear"},
			{Key: "1/2/b", Desc: "download"},
			{Key: "g", Desc: "gallery"},
			{Key: "d", Desc: "theme"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(mode FooterMode, generating, hasSketch, hasResult bool) {
	f.mode = mode
	f.generating = generating
	f.hasSketch = hasSketch
	f.hasResult = hasResult
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings for the generator view
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var bindings []KeyBinding
	switch f.mode {
	case FooterGallery:
		bindings = []KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "1", Desc: "original"},
			{Key: "2", Desc: "generated"},
			{Key: "b", Desc: "both"},
			{Key: "y", Desc: "copy ref"},
			{Key: "g/esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case FooterLogs:
		bindings = []KeyBinding{
			{Key: "esc/l", Desc: "close"},
			{Key: "←/→", Desc: "file"},
			{Key: "f", Desc: "follow"},
			{Key: "r", Desc: "refresh"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case FooterInspector:
		bindings = []KeyBinding{
			{Key: "esc/i", Desc: "close"},
			{Key: "↑/↓/j/k", Desc: "scroll"},
			{Key: "pgup/dn", Desc: "page"},
		}
	default:
		if f.generating {
			bindings = []KeyBinding{
				{Key: "c", Desc: "cancel"},
				{Key: "g", Desc: "gallery"},
				{Key: "l", Desc: "logs"},
				{Key: "q", Desc: "quit"},
			}
			break
		}
		for _, b := range f.bindings {
			if (b.Key == "enter" || b.Key == "x") && !f.hasSketch {
				continue
			}
			if b.Key == "1/2/b" && !f.hasResult {
				continue
			}
			bindings = append(bindings, b)
		}
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var color = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, color = "✕", ColorError
	case FlashWarning:
		icon, color = "⚠", ColorWarning
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	content := style.Render(icon + " " + f.flashMessage.Text)
	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}
