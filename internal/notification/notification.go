// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/sketchlab/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "sketchlab"

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

var (
	notifierMu sync.Mutex
	notifier   notifyFunc = beeep.Notify
)

// SetNotifier replaces the notification backend (for testing).
func SetNotifier(fn func(title, message string, icon any) error) {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)

	notifierMu.Lock()
	fn := notifier
	notifierMu.Unlock()

	// Use empty string for icon - beeep handles platform defaults
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// GenerationCompleted announces a finished generation for sourceName.
func GenerationCompleted(sourceName string) error {
	return Send(AppName, "Generated image for "+sourceName+" is ready")
}

// GenerationFailed announces a failed generation with a short reason.
func GenerationFailed(reason string) error {
	return Send(AppName, "Generation failed: "+reason)
}
