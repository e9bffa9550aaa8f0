package ui

import (
	"strings"
	"testing"
)

func TestRenderJSON_Empty(t *testing.T) {
	if !strings.Contains(stripANSI(RenderJSON(nil)), "No response yet") {
		t.Error("empty body should show a placeholder")
	}
}

func TestRenderJSON_PrettyPrints(t *testing.T) {
	out := stripANSI(RenderJSON([]byte(`{"generated_image":"https://cdn.example.com/a.png","seed":7}`)))

	if !strings.Contains(out, `"generated_image"`) {
		t.Errorf("output should contain the key, got %q", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("output should be indented")
	}
}

func TestRenderJSON_ShortensLongStrings(t *testing.T) {
	long := "data:image/png;base64," + strings.Repeat("A", 5000)
	out := stripANSI(RenderJSON([]byte(`{"generated_image":"` + long + `"}`)))

	if strings.Contains(out, strings.Repeat("A", 500)) {
		t.Error("long values should be shortened")
	}
	if !strings.Contains(out, "more bytes") {
		t.Error("shortened values should say how much was cut")
	}
}

func TestRenderJSON_InvalidIsVerbatim(t *testing.T) {
	if got := RenderJSON([]byte("not json")); got != "not json" {
		t.Errorf("invalid JSON should be shown verbatim, got %q", got)
	}
}

func TestInspector_View(t *testing.T) {
	in := NewInspector([]byte(`{"generated_image":"x"}`))
	in.SetSize(80, 10)

	view := stripANSI(in.View())
	if !strings.Contains(view, "Last response (23 bytes)") {
		t.Errorf("inspector title should show the body size, got %q", view)
	}
}
