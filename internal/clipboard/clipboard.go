package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/sketchlab/internal/logger"
)

var (
	initMu      sync.Mutex
	initialized bool
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return nil
	}

	log := logger.ComponentLogger("Clipboard")
	if err := clipboard.Init(); err != nil {
		log.Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	log.Debug("initialized")
	return nil
}

// ReadImage attempts to read an image from the clipboard.
// Returns nil if clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	imgBytes := clipboard.Read(clipboard.FmtImage)
	if len(imgBytes) == 0 {
		logger.ComponentLogger("Clipboard").Debug("no image data found")
		return nil, nil // No image in clipboard, not an error
	}

	return decodeToPNG(imgBytes)
}

// decodeToPNG decodes any registered image format and re-encodes it as PNG.
func decodeToPNG(raw []byte) (*ImageData, error) {
	log := logger.ComponentLogger("Clipboard")

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Warn("failed to decode image", "bytes", len(raw), "error", err)
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()
	log.Debug("image decoded", "width", bounds.Dx(), "height", bounds.Dy(), "format", format)

	// Re-encode as PNG for consistent format
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return &ImageData{
		Data:      pngBuf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.ComponentLogger("Clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}
