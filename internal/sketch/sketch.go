// Package sketch turns user-selected files and pasted images into uploads.
package sketch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/zhubert/sketchlab/internal/clipboard"
	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/generation"
)

// AcceptedExtensions are the raster formats offered by the file picker.
// This is a browsing hint only: Load accepts any non-empty file.
var AcceptedExtensions = []string{".jpeg", ".jpg", ".png", ".gif", ".bmp", ".webp"}

// PastedName is the file name sent for sketches pasted from the clipboard.
const PastedName = "pasted-sketch.png"

var extensionTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// IsAccepted reports whether path has one of the AcceptedExtensions.
func IsAccepted(path string) bool {
	return slices.Contains(AcceptedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Load reads path into an upload. Empty files are rejected; everything else
// is passed through as-is.
func Load(path string) (generation.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generation.Upload{}, pkgerrors.SketchReadFailed(path, err)
	}
	if len(data) == 0 {
		return generation.Upload{}, pkgerrors.SketchEmpty(path)
	}

	return generation.Upload{
		Name:      filepath.Base(path),
		MediaType: MediaType(path, data),
		Data:      data,
	}, nil
}

// MediaType sniffs data, falling back to the extension of name when the
// content is not recognised as an image.
func MediaType(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return sniffed
}

// FromClipboard builds an upload from a pasted image.
func FromClipboard(img *clipboard.ImageData) (generation.Upload, error) {
	if img == nil || len(img.Data) == 0 {
		return generation.Upload{}, pkgerrors.SketchEmpty("clipboard")
	}
	if err := img.Validate(); err != nil {
		return generation.Upload{}, pkgerrors.E(pkgerrors.Op("sketch.FromClipboard"), pkgerrors.KindInvalid, err)
	}
	return generation.Upload{
		Name:      PastedName,
		MediaType: img.MediaType,
		Data:      img.Data,
	}, nil
}

// Info describes an upload for display.
type Info struct {
	Width  int
	Height int
	Format string
}

// Describe decodes just enough of data to report its dimensions.
func Describe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, err
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// String renders info as "640×480 png".
func (i Info) String() string {
	return fmt.Sprintf("%d×%d %s", i.Width, i.Height, i.Format)
}

// HumanSize formats a byte count for the sketch panel.
func HumanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
