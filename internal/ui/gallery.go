package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/sketchlab/internal/studio"
)

// GalleryTimeLayout is how result timestamps are shown on gallery cards.
const GalleryTimeLayout = "Jan 2, 2006, 03:04 PM"

// FormatGalleryTime formats t in the local zone for a gallery card.
func FormatGalleryTime(t time.Time) string {
	return t.Local().Format(GalleryTimeLayout)
}

// Gallery tracks selection and scroll position over the session history.
// Index 0 is the newest result.
type Gallery struct {
	selected int
	offset   int
}

// NewGallery creates a gallery with the newest result selected
func NewGallery() *Gallery {
	return &Gallery{}
}

// Selected returns the selected history index
func (g *Gallery) Selected() int {
	return g.selected
}

// Select moves the selection to index i, clamped to [0, n)
func (g *Gallery) Select(i, n int) {
	g.selected = i
	g.Clamp(n)
}

// MoveUp selects the next newer result
func (g *Gallery) MoveUp() {
	if g.selected > 0 {
		g.selected--
	}
}

// MoveDown selects the next older result
func (g *Gallery) MoveDown(n int) {
	if g.selected < n-1 {
		g.selected++
	}
}

// Clamp keeps the selection inside a history of n results
func (g *Gallery) Clamp(n int) {
	if g.selected >= n {
		g.selected = n - 1
	}
	if g.selected < 0 {
		g.selected = 0
	}
}

// Reset selects the newest result and scrolls to the top
func (g *Gallery) Reset() {
	g.selected = 0
	g.offset = 0
}

// visibleCards returns how many cards fit in height
func visibleCards(height int) int {
	return max((height-TitleHeight)/GalleryCardHeight, 1)
}

// ensureVisible scrolls so the selection is on screen
func (g *Gallery) ensureVisible(height int) {
	visible := visibleCards(height)
	if g.selected < g.offset {
		g.offset = g.selected
	}
	if g.selected >= g.offset+visible {
		g.offset = g.selected - visible + 1
	}
}

// View renders the history as a list of cards, newest first.
func (g *Gallery) View(history []studio.Result, width, height int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	title := PanelTitleStyle.Render(fmt.Sprintf("Gallery (%d)", len(history)))
	if len(history) == 0 {
		empty := LabelStyle.Render("No generations yet. Results appear here newest first.")
		return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.NewStyle().Padding(1, 2).Render(empty))
	}

	g.Clamp(len(history))
	g.ensureVisible(height)

	visible := visibleCards(height)
	end := min(g.offset+visible, len(history))

	cards := []string{title}
	for i := g.offset; i < end; i++ {
		cards = append(cards, renderCard(history[i], i, len(history), i == g.selected, width))
	}

	if end < len(history) {
		more := LabelStyle.Italic(true).Render(fmt.Sprintf("  %d more below", len(history)-end))
		cards = append(cards, more)
	}

	return strings.Join(cards, "\n")
}

// renderCard renders one history entry. Cards are numbered oldest-first so
// a result keeps its number as newer ones arrive.
func renderCard(r studio.Result, index, total int, selected bool, width int) string {
	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	inner := width - BorderSize - 2

	number := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(fmt.Sprintf("#%d", total-index))
	when := ValueStyle.Render(FormatGalleryTime(r.Timestamp))
	heading := number + "  " + when
	if r.SourceName != "" {
		heading += "  " + LabelStyle.Render(truncate(r.SourceName, inner/3))
	}

	lines := []string{
		heading,
		field("Original", truncate(r.OriginalRef.String(), inner-12)),
		field("Generated", truncate(r.GeneratedRef, inner-12)),
		LabelStyle.Render(r.TimestampISO()),
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}
