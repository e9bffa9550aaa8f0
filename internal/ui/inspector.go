package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// maxInspectorString caps long JSON string values (inline data URIs) so the
// viewport stays usable.
const maxInspectorString = 120

// Inspector shows the raw body of the last successful response.
type Inspector struct {
	Viewport viewport.Model
	raw      []byte
	width    int
	height   int
}

// NewInspector creates an inspector over a response body.
func NewInspector(raw []byte) *Inspector {
	in := &Inspector{
		Viewport: viewport.New(),
		raw:      raw,
	}
	in.Viewport.MouseWheelEnabled = true
	in.Viewport.MouseWheelDelta = 3
	in.Viewport.SetContent(RenderJSON(raw))
	return in
}

// SetSize sets the inspector dimensions, including its title line.
func (in *Inspector) SetSize(width, height int) {
	in.width = width
	in.height = height
	in.Viewport.SetWidth(width)
	in.Viewport.SetHeight(max(height-TitleHeight, 1))
}

// Refresh re-renders the body, for example after the theme changes.
func (in *Inspector) Refresh() {
	in.Viewport.SetContent(RenderJSON(in.raw))
}

// Update forwards scrolling to the viewport.
func (in *Inspector) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in.Viewport, cmd = in.Viewport.Update(msg)
	return cmd
}

// View renders the title and the highlighted body.
func (in *Inspector) View() string {
	title := PanelTitleStyle.Render(fmt.Sprintf("Last response (%d bytes)", len(in.raw)))
	body := lipgloss.NewStyle().MaxHeight(max(in.height-TitleHeight, 1)).Render(in.Viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// RenderJSON pretty-prints and highlights a JSON body. Bodies that are not
// valid JSON are shown verbatim.
func RenderJSON(raw []byte) string {
	if len(raw) == 0 {
		return LabelStyle.Render("No response yet. Generate an image first.")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	shortened, err := json.Marshal(shortenStrings(v))
	if err != nil {
		return string(raw)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, shortened, "", "  "); err != nil {
		return string(raw)
	}
	return highlightCode(pretty.String(), "json")
}

// shortenStrings truncates long string values anywhere in a decoded value.
func shortenStrings(v any) any {
	switch t := v.(type) {
	case string:
		if len(t) > maxInspectorString {
			return t[:maxInspectorString] + fmt.Sprintf("… (%d more bytes)", len(t)-maxInspectorString)
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = shortenStrings(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = shortenStrings(val)
		}
		return t
	default:
		return v
	}
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().ChromaStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
