package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhubert/sketchlab/internal/config"
)

func TestSaveConfigOrFlash_Success(t *testing.T) {
	m := testModelWithSize(t, testConfig(t), okGenerator(generatedDataURI), 120, 40)

	if cmd := m.saveConfigOrFlash(); cmd != nil {
		t.Error("expected nil cmd on successful save, got non-nil")
	}
}

func TestSaveConfigOrFlash_Error(t *testing.T) {
	// A regular file where the config directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New(filepath.Join(blocker, "config.json"))
	cfg.MarkWelcomeShown()
	m := testModelWithSize(t, cfg, okGenerator(generatedDataURI), 120, 40)

	if cmd := m.saveConfigOrFlash(); cmd == nil {
		t.Error("expected non-nil cmd on failed save, got nil")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
}
