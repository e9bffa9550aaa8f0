package ui

import "charm.land/lipgloss/v2"

// Color palette. The values here are placeholders; regenerateStyles fills
// them from the active theme at init.
var (
	ColorPrimary     = lipgloss.Color("#6D28D9")
	ColorSecondary   = lipgloss.Color("#0E7490")
	ColorMuted       = lipgloss.Color("#4B5563")
	ColorBorder      = lipgloss.Color("#D1D5DB")
	ColorBorderFocus = lipgloss.Color("#6D28D9")
	ColorBg          = lipgloss.Color("#F9FAFB")
	ColorBgSelected  = lipgloss.Color("#EDE9FE")
	ColorText        = lipgloss.Color("#111827")
	ColorTextMuted   = lipgloss.Color("#4B5563")
	ColorTextInverse = lipgloss.Color("#F9FAFB")
	ColorWarning     = lipgloss.Color("#B45309")
	ColorInfo        = lipgloss.Color("#0891B2")
	ColorError       = lipgloss.Color("#DC2626")
	ColorSuccess     = lipgloss.Color("#047857")
)

// Header styles
var (
	HeaderStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Gallery card and field styles
var (
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	LabelStyle        lipgloss.Style
	ValueStyle        lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	FailureBoxStyle    lipgloss.Style
)
