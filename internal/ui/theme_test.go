package ui

import (
	"testing"

	"github.com/zhubert/sketchlab/internal/ui/modals"
)

func TestSetDarkMode(t *testing.T) {
	defer SetDarkMode(false)

	SetDarkMode(true)
	if !IsDarkMode() {
		t.Error("IsDarkMode() should be true after SetDarkMode(true)")
	}
	if CurrentTheme().Name != "Dark" {
		t.Errorf("CurrentTheme() = %q, want Dark", CurrentTheme().Name)
	}
	if modals.ColorPrimary != ColorPrimary {
		t.Error("modal palette should follow the active theme")
	}

	SetDarkMode(false)
	if IsDarkMode() {
		t.Error("IsDarkMode() should be false after SetDarkMode(false)")
	}
	if CurrentThemeName() != ThemeLight {
		t.Errorf("CurrentThemeName() = %q, want light", CurrentThemeName())
	}
}

func TestGetTheme_Unknown(t *testing.T) {
	if GetTheme("neon").Name != BuiltinThemes[DefaultTheme].Name {
		t.Error("unknown theme should fall back to the default")
	}
}

func TestTheme_Defaults(t *testing.T) {
	dark := BuiltinThemes[ThemeDark]
	if dark.GetBgSelected() != dark.Primary {
		t.Error("empty BgSelected should default to Primary")
	}
	if dark.GetBorderFocus() != dark.Primary {
		t.Error("empty BorderFocus should default to Primary")
	}

	light := BuiltinThemes[ThemeLight]
	if light.GetBgSelected() != light.BgSelected {
		t.Error("explicit BgSelected should be used")
	}
}
