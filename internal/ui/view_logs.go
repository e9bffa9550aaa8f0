package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/sketchlab/internal/keys"
	"github.com/zhubert/sketchlab/internal/logger"
)

// LogFile is one log file offered by the log viewer.
type LogFile struct {
	Name    string
	Path    string
	Content string
}

// GetLogFiles returns the log files available for viewing, the active debug
// log first. Always returns a non-nil slice.
func GetLogFiles() []LogFile {
	files := []LogFile{}

	paths, err := logger.LogFiles()
	if err != nil {
		return files
	}

	active := logger.Path()
	for _, path := range paths {
		name := filepath.Base(path)
		if path == active {
			name = "Debug Log"
		}
		files = append(files, LogFile{Name: name, Path: path})
	}
	return files
}

// LogViewer shows sketchlab's log files in a scrolling viewport. Failed
// generations are reported here with their full error chain.
type LogViewer struct {
	Files      []LogFile
	FileIndex  int
	Viewport   viewport.Model
	FollowTail bool
	width      int
	height     int
}

// NewLogViewer creates a log viewer over files, following the tail.
func NewLogViewer(files []LogFile) *LogViewer {
	lv := &LogViewer{
		Files:      files,
		Viewport:   viewport.New(),
		FollowTail: true,
	}
	lv.Viewport.MouseWheelEnabled = true
	lv.Viewport.MouseWheelDelta = 3
	lv.Viewport.SoftWrap = true
	lv.updateContent()
	return lv
}

// SetSize sets the viewer dimensions, including the navigation bar.
func (lv *LogViewer) SetSize(width, height int) {
	lv.width = width
	lv.height = height
	lv.Viewport.SetWidth(width)
	lv.Viewport.SetHeight(max(height-NavBarHeight, 1))
}

// Refresh reloads the current file.
func (lv *LogViewer) Refresh() {
	lv.updateContent()
}

// NextFile selects the next log file, if any.
func (lv *LogViewer) NextFile() {
	if lv.FileIndex < len(lv.Files)-1 {
		lv.FileIndex++
		lv.updateContent()
	}
}

// PrevFile selects the previous log file, if any.
func (lv *LogViewer) PrevFile() {
	if lv.FileIndex > 0 {
		lv.FileIndex--
		lv.updateContent()
	}
}

// ToggleFollowTail toggles the follow tail mode.
func (lv *LogViewer) ToggleFollowTail() {
	lv.FollowTail = !lv.FollowTail
	if lv.FollowTail {
		lv.Viewport.GotoBottom()
	}
}

// Update handles viewer keys. Scrolling keys go to the viewport.
func (lv *LogViewer) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Left:
			lv.PrevFile()
			return nil
		case keys.Right:
			lv.NextFile()
			return nil
		case "f":
			lv.ToggleFollowTail()
			return nil
		case "r":
			lv.Refresh()
			return nil
		}
	}

	var cmd tea.Cmd
	lv.Viewport, cmd = lv.Viewport.Update(msg)
	return cmd
}

// updateContent loads the currently selected file into the viewport.
func (lv *LogViewer) updateContent() {
	if len(lv.Files) == 0 {
		lv.Viewport.SetContent("No log files found")
		return
	}
	if lv.FileIndex >= len(lv.Files) {
		lv.FileIndex = len(lv.Files) - 1
	}

	file := &lv.Files[lv.FileIndex]

	content, err := os.ReadFile(file.Path)
	if err != nil {
		lv.Viewport.SetContent(fmt.Sprintf("Error reading log file: %v", err))
		return
	}
	file.Content = string(content)

	lv.Viewport.SetContent(highlightLogContent(file.Content))

	if lv.FollowTail {
		lv.Viewport.GotoBottom()
	} else {
		lv.Viewport.GotoTop()
	}
}

// highlightLogContent applies syntax highlighting to log content.
func highlightLogContent(content string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(content, "\n") {
		sb.WriteString(highlightLogLine(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// highlightLogLine applies syntax highlighting to a single slog text line.
func highlightLogLine(line string) string {
	if line == "" {
		return line
	}

	levelErrorStyle := lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	levelWarnStyle := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	levelInfoStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	levelDebugStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)

	switch {
	case strings.Contains(line, "level=ERROR"):
		line = strings.Replace(line, "level=ERROR", levelErrorStyle.Render("level=ERROR"), 1)
	case strings.Contains(line, "level=WARN"):
		line = strings.Replace(line, "level=WARN", levelWarnStyle.Render("level=WARN"), 1)
	case strings.Contains(line, "level=INFO"):
		line = strings.Replace(line, "level=INFO", levelInfoStyle.Render("level=INFO"), 1)
	case strings.Contains(line, "level=DEBUG"):
		line = strings.Replace(line, "level=DEBUG", levelDebugStyle.Render("level=DEBUG"), 1)
	}

	if idx := strings.Index(line, "msg="); idx >= 0 {
		before := line[:idx]
		rest := line[idx:]

		if len(rest) > 4 && rest[4] == '"' {
			endIdx := strings.Index(rest[5:], "\"")
			if endIdx >= 0 {
				msgKey := keyStyle.Render("msg=")
				msgValue := valueStyle.Render(rest[4 : 5+endIdx+1])
				line = before + msgKey + msgValue + rest[5+endIdx+1:]
			}
		}
	}

	return line
}

// View renders the navigation bar above the log content.
func (lv *LogViewer) View() string {
	navBar := lv.renderNavBar(lv.width)
	logHeight := max(lv.height-NavBarHeight, 1)
	logContent := lipgloss.NewStyle().
		MaxHeight(logHeight).
		Render(lv.Viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, navBar, logContent)
}

// renderNavBar renders "← Debug Log (1 of 3) → [Follow] [r: refresh]".
func (lv *LogViewer) renderNavBar(width int) string {
	if len(lv.Files) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Foreground(ColorTextMuted).
			Render("No log files found")
	}

	currentFile := lv.Files[lv.FileIndex]

	leftArrow := "  "
	if lv.FileIndex > 0 {
		leftArrow = "← "
	}
	rightArrow := "  "
	if lv.FileIndex < len(lv.Files)-1 {
		rightArrow = " →"
	}

	counterStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	counter := counterStyle.Render(fmt.Sprintf("(%d of %d)", lv.FileIndex+1, len(lv.Files)))

	arrowStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var followIndicator string
	if lv.FollowTail {
		followIndicator = " " + lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("[Follow]")
	} else {
		followIndicator = " " + lipgloss.NewStyle().Foreground(ColorTextMuted).Render("[f: follow]")
	}

	refreshHint := " " + lipgloss.NewStyle().Foreground(ColorTextMuted).Render("[r: refresh]")

	fixedWidth := lipgloss.Width(leftArrow) + lipgloss.Width(counter) + lipgloss.Width(rightArrow) +
		lipgloss.Width(followIndicator) + lipgloss.Width(refreshHint) + 1
	maxFilenameWidth := max(width-fixedWidth, 10)

	filename := currentFile.Name
	if len(filename) > maxFilenameWidth {
		filename = filename[:maxFilenameWidth-1] + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	return arrowStyle.Render(leftArrow) + nameStyle.Render(filename) + " " + counter +
		arrowStyle.Render(rightArrow) + followIndicator + refreshHint
}
