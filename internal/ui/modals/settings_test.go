package modals

import (
	"strings"
	"testing"
)

func TestNewSettingsState_InitialValues(t *testing.T) {
	s := NewSettingsState("http://gpu:9000/generate_json", 30, "/tmp/out", true)

	if s.GetEndpoint() != "http://gpu:9000/generate_json" {
		t.Errorf("GetEndpoint() = %q", s.GetEndpoint())
	}
	if s.GetTimeoutSeconds() != 30 {
		t.Errorf("GetTimeoutSeconds() = %d, want 30", s.GetTimeoutSeconds())
	}
	if s.GetDownloadDir() != "/tmp/out" {
		t.Errorf("GetDownloadDir() = %q", s.GetDownloadDir())
	}
	if !s.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestNewSettingsState_ZeroTimeoutIsBlank(t *testing.T) {
	s := NewSettingsState("", 0, "", false)

	if s.timeout != "" {
		t.Errorf("zero timeout should show as blank, got %q", s.timeout)
	}
	if s.GetTimeoutSeconds() != 0 {
		t.Errorf("GetTimeoutSeconds() = %d, want 0", s.GetTimeoutSeconds())
	}
	if s.GetNotificationsEnabled() {
		t.Error("notifications should be disabled")
	}
}

func TestSettingsState_Validate(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		timeout  string
		wantErr  bool
	}{
		{"defaults", "", "", false},
		{"valid", "https://example.com/generate", "15", false},
		{"bad scheme", "ftp://example.com", "", true},
		{"not a number", "", "soon", true},
		{"negative", "", "-3", true},
		{"whitespace trimmed", "  http://localhost:8000/x  ", " 5 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettingsState("", 0, "", false)
			s.endpoint = tt.endpoint
			s.timeout = tt.timeout

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsState_Render(t *testing.T) {
	s := NewSettingsState("", 0, "", false)
	s.SetSize(100, 30)

	rendered := s.Render()
	for _, want := range []string{"Settings", "Generation endpoint", "Request timeout", "Download directory"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("settings modal should contain %q", want)
		}
	}
	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("PreferredWidth() = %d, want %d", s.PreferredWidth(), ModalWidthWide)
	}
}
