package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " sketchlab"

// Header represents the top header bar
type Header struct {
	width    int
	viewName string
	endpoint string
	busy     bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetViewName sets the name of the active view
func (h *Header) SetViewName(name string) {
	h.viewName = name
}

// SetEndpoint sets the endpoint host shown on the right
func (h *Header) SetEndpoint(endpoint string) {
	h.endpoint = endpoint
}

// SetBusy marks whether a generation is in flight
func (h *Header) SetBusy(busy bool) {
	h.busy = busy
}

// View renders the header
func (h *Header) View() string {
	var rightText string
	if h.viewName != "" {
		rightText = h.viewName
		if h.busy {
			rightText += " •"
		}
	}
	if h.endpoint != "" {
		if rightText != "" {
			rightText += "  "
		}
		rightText += "(" + h.endpoint + ")"
	}
	if rightText != "" {
		rightText += " "
	}

	titleWidth := runewidth.StringWidth(headerTitle)
	if h.width > 0 && titleWidth+runewidth.StringWidth(rightText) > h.width {
		rightText = ansi.Truncate(rightText, max(h.width-titleWidth-1, 0), "…")
	}

	paddingLen := h.width - titleWidth - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := headerTitle + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// The endpoint portion, when present, is muted.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.TextInverse)
	if IsDarkMode() {
		textColor = lipgloss.Color(theme.Text)
	}
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	endpointStart := -1
	if h.endpoint != "" {
		if idx := strings.LastIndex(content, "("); idx >= 0 {
			endpointStart = len([]rune(content[:idx]))
		}
	}

	titleLen := len([]rune(headerTitle))
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleLen)

		if endpointStart >= 0 && i >= endpointStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
