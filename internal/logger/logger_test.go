package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
// Returns the path to the temp file and a cleanup function.
func setupTestLogger(t *testing.T) (string, func()) {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}

	return logPath, func() {
		Reset()
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_WritesToPath(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Info("info-unique-marker %d", 7)

	content := readLog(t, logPath)
	if !strings.Contains(content, "info-unique-marker 7") {
		t.Error("log file should contain the formatted info message")
	}
	if !strings.Contains(content, "Logger initialized") {
		t.Error("log file should contain the initialization line")
	}
}

func TestInit_SecondCallIsNoop(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	other := filepath.Join(t.TempDir(), "other.log")
	if err := Init(other); err != nil {
		t.Fatalf("second Init should not fail: %v", err)
	}
	if Path() != logPath {
		t.Errorf("Path() = %q, want %q", Path(), logPath)
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init("/nonexistent/dir/sketchlab.log"); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestDebug_RespectsLevel(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Debug("hidden-debug-marker")
	if strings.Contains(readLog(t, logPath), "hidden-debug-marker") {
		t.Error("debug message should be filtered at info level")
	}

	SetDebug(true)
	Debug("visible-debug-marker")
	if !strings.Contains(readLog(t, logPath), "visible-debug-marker") {
		t.Error("debug message should be written after SetDebug(true)")
	}
}

func TestLevels(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Warn("warn-marker")
	Error("error-marker")

	content := readLog(t, logPath)
	if !strings.Contains(content, "level=WARN") || !strings.Contains(content, "warn-marker") {
		t.Error("expected WARN line")
	}
	if !strings.Contains(content, "level=ERROR") || !strings.Contains(content, "error-marker") {
		t.Error("expected ERROR line")
	}
}

func TestComponentLogger(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	log := ComponentLogger("Generation")
	log.Info("request sent", "bytes", 42)

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=Generation") {
		t.Error("component attribute should be attached")
	}
	if !strings.Contains(content, "bytes=42") {
		t.Error("structured attributes should be written")
	}
}

func TestClose(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	Close()
	// Logging after close must not panic
	Info("after close")
}

func TestPath_DefaultBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	if Path() != DefaultLogPath {
		t.Errorf("Path() = %q, want %q", Path(), DefaultLogPath)
	}
}

func TestLog_Concurrent(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				Info("concurrent test %d-%d", n, j)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestLogFiles_IncludesActiveLog(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Info("make sure the file exists")

	files, err := LogFiles()
	if err != nil {
		t.Fatalf("LogFiles() error: %v", err)
	}
	if len(files) == 0 || files[0] != logPath {
		t.Errorf("LogFiles() = %v, want active log %q first", files, logPath)
	}
}
