package modals

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/sketchlab/internal/config"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

const optionNotifications = "notifications"

// SettingsState edits the persisted configuration.
type SettingsState struct {
	endpoint    string
	timeout     string
	downloadDir string

	// MultiSelect binding
	generalOptions []string

	form        *huh.Form
	initialized bool

	availableWidth int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 4
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, &s.initialized, msg)
	return s, cmd
}

// Validate checks every field. The app calls it before saving.
func (s *SettingsState) Validate() error {
	if err := validateEndpointField(s.endpoint); err != nil {
		return err
	}
	if _, err := parseTimeout(s.timeout); err != nil {
		return err
	}
	return nil
}

// GetEndpoint returns the endpoint URL, empty to use the default.
func (s *SettingsState) GetEndpoint() string {
	return strings.TrimSpace(s.endpoint)
}

// GetTimeoutSeconds returns the request timeout. Invalid input yields 0.
func (s *SettingsState) GetTimeoutSeconds() int {
	n, _ := parseTimeout(s.timeout)
	return n
}

// GetDownloadDir returns the download directory, empty for the default.
func (s *SettingsState) GetDownloadDir() string {
	return strings.TrimSpace(s.downloadDir)
}

// GetNotificationsEnabled returns whether notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return slices.Contains(s.generalOptions, optionNotifications)
}

func validateEndpointField(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return config.ValidateEndpoint(v)
}

func parseTimeout(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("timeout must be a whole number of seconds, got %q", v)
	}
	return n, nil
}

// NewSettingsState creates a SettingsState showing the current values.
func NewSettingsState(endpoint string, timeoutSeconds int, downloadDir string, notificationsEnabled bool) *SettingsState {
	s := &SettingsState{
		endpoint:       endpoint,
		downloadDir:    downloadDir,
		availableWidth: ModalWidthWide,
	}
	if timeoutSeconds > 0 {
		s.timeout = strconv.Itoa(timeoutSeconds)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Generation endpoint").
				Description("Receives sketches as multipart uploads").
				Placeholder(config.DefaultEndpointURL).
				CharLimit(ModalInputCharLimit).
				Validate(validateEndpointField).
				Value(&s.endpoint),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Description("Leave empty to wait for the service indefinitely").
				Placeholder("0").
				CharLimit(6).
				Validate(func(v string) error {
					_, err := parseTimeout(v)
					return err
				}).
				Value(&s.timeout),
			huh.NewInput().
				Title("Download directory").
				Placeholder(config.DefaultDownloadDir()).
				CharLimit(ModalInputCharLimit).
				Value(&s.downloadDir),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(generalOpts...).
				Height(len(generalOpts)).
				Value(&s.generalOptions),
		),
	).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	s.form.Init()
	s.initialized = true
	return s
}
