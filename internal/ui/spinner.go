package ui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// SpinnerTickMsg advances the generating spinner
type SpinnerTickMsg time.Time

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinnerInterval is the time between spinner frames
const spinnerInterval = 200 * time.Millisecond

// SpinnerTick returns a command that sends a tick message after a delay
func SpinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Spinner tracks the animation frame and elapsed time of a generation.
type Spinner struct {
	frame   int
	started time.Time
}

// Start resets the spinner to its first frame
func (s *Spinner) Start(now time.Time) {
	s.frame = 0
	s.started = now
}

// Advance moves to the next frame
func (s *Spinner) Advance() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// Frame returns the current frame glyph
func (s *Spinner) Frame() string {
	return spinnerFrames[s.frame]
}

// Elapsed returns the time since Start, truncated to seconds
func (s *Spinner) Elapsed(now time.Time) time.Duration {
	if s.started.IsZero() {
		return 0
	}
	return now.Sub(s.started).Truncate(time.Second)
}

// View renders the spinner with its label and elapsed time.
func (s *Spinner) View(label string, now time.Time) string {
	glyph := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(s.Frame())
	text := StatusLoadingStyle.Render(label + "...")
	elapsed := lipgloss.NewStyle().Foreground(ColorTextMuted).Render(fmt.Sprintf("(%s)", formatElapsed(s.Elapsed(now))))
	return glyph + " " + text + " " + elapsed
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %02ds", int(d.Minutes()), int(d.Seconds())%60)
}
