package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/sketchlab/internal/sketch"
	"github.com/zhubert/sketchlab/internal/studio"
)

// SketchSummary describes the selected sketch for the sketch panel.
type SketchSummary struct {
	Name string
	Size int
	Info string // "640×480 png", empty if the image could not be decoded
}

// GeneratorState is everything the Generator view needs for one frame.
type GeneratorState struct {
	Sketch     *SketchSummary
	Generating bool
	Spinner    string // Rendered spinner line, used while Generating
	Current    *studio.Result
	Failure    *studio.Failure
}

// RenderGenerator renders the sketch panel and the result panel. Panels sit
// side by side when there is room and stack otherwise.
func RenderGenerator(width, height int, st GeneratorState) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	sideBySide := width >= DefaultWrapWidth
	active := st.Generating || st.Current != nil || st.Failure != nil

	if !sideBySide {
		top := height / 2
		left := renderPanel("Sketch", renderSketchPanel(width-BorderSize-2, st), width, top, !active)
		right := renderPanel("Result", renderResultPanel(width-BorderSize-2, st), width, height-top, active)
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	half := width / 2
	left := renderPanel("Sketch", renderSketchPanel(half-BorderSize-2, st), half, height, !active)
	right := renderPanel("Result", renderResultPanel(width-half-BorderSize-2, st), width-half, height, active)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderPanel(title, body string, width, height int, focused bool) string {
	style := PanelStyle
	if focused {
		style = PanelFocusedStyle
	}
	innerHeight := max(height-BorderSize, 1)
	content := lipgloss.JoinVertical(lipgloss.Left, PanelTitleStyle.Render(title), body)
	content = lipgloss.NewStyle().MaxHeight(innerHeight).Render(content)
	return style.Width(width).Height(height).Render(content)
}

func renderSketchPanel(width int, st GeneratorState) string {
	if st.Sketch == nil {
		lines := []string{
			LabelStyle.Render("No sketch selected."),
			"",
			FooterKeyStyle.Render("o") + FooterDescStyle.Render("       open a file"),
			FooterKeyStyle.Render("ctrl+v") + FooterDescStyle.Render("  paste from clipboard"),
			"",
			LabelStyle.Render("Accepts " + strings.Join(sketch.AcceptedExtensions, " ")),
		}
		return padLeft(lines)
	}

	lines := []string{
		field("File", truncate(st.Sketch.Name, width-8)),
		field("Size", sketch.HumanSize(st.Sketch.Size)),
	}
	if st.Sketch.Info != "" {
		lines = append(lines, field("Image", st.Sketch.Info))
	}
	lines = append(lines, "")
	if !st.Generating {
		lines = append(lines,
			FooterKeyStyle.Render("enter")+FooterDescStyle.Render("  generate"),
			FooterKeyStyle.Render("x")+FooterDescStyle.Render("      clear selection"),
		)
	}
	return padLeft(lines)
}

func renderResultPanel(width int, st GeneratorState) string {
	var lines []string

	switch {
	case st.Generating:
		lines = append(lines, st.Spinner)
	case st.Current != nil:
		r := st.Current
		lines = append(lines,
			StatusSuccessStyle.Render("✓ Generated"),
			"",
			field("Original", truncate(r.OriginalRef.String(), width-12)),
			field("Generated", truncate(r.GeneratedRef, width-12)),
			field("Created", FormatResultTime(r)),
			"",
			FooterKeyStyle.Render("1")+FooterDescStyle.Render(" original  ")+
				FooterKeyStyle.Render("2")+FooterDescStyle.Render(" generated  ")+
				FooterKeyStyle.Render("b")+FooterDescStyle.Render(" both  ")+
				FooterKeyStyle.Render("y")+FooterDescStyle.Render(" copy ref"),
		)
	case st.Failure == nil:
		lines = append(lines, LabelStyle.Render("No result yet. Select a sketch and press enter."))
	}

	if st.Failure != nil && !st.Generating {
		lines = append(lines, RenderFailure(width, st.Failure))
	}

	return padLeft(lines)
}

// RenderFailure renders the failure banner left by a failed attempt.
func RenderFailure(width int, f *studio.Failure) string {
	msg := StatusErrorStyle.Render("✕ " + f.Message())
	var detail string
	if f.SourceName != "" {
		detail = LabelStyle.Render(truncate(f.SourceName, max(width-4, MinRefWidth)))
	}
	hint := LabelStyle.Render("Details are in the log (l). Press enter to retry.")
	body := lipgloss.JoinVertical(lipgloss.Left, msg, detail, hint)
	if detail == "" {
		body = lipgloss.JoinVertical(lipgloss.Left, msg, hint)
	}
	return FailureBoxStyle.Width(max(width, MinRefWidth)).Render(body)
}

// FormatResultTime renders a result's timestamp in local time for display.
func FormatResultTime(r *studio.Result) string {
	return FormatGalleryTime(r.Timestamp)
}

func field(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

// truncate shortens s to width cells, keeping at least MinRefWidth.
func truncate(s string, width int) string {
	return ansi.Truncate(s, max(width, MinRefWidth), "…")
}

func padLeft(lines []string) string {
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(lines, "\n"))
}
