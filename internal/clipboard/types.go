// Package clipboard reads pasted sketches from, and writes image references
// to, the system clipboard.
package clipboard

import "fmt"

// MaxImageSize is the largest pasted sketch accepted (16MB of PNG)
const MaxImageSize = 16 << 20

// MaxImageDimension is the maximum allowed width or height in pixels
const MaxImageDimension = 8192

// ImageData represents clipboard image data
type ImageData struct {
	Data      []byte // PNG encoded image data
	MediaType string // MIME type (always "image/png" since we encode to PNG)
	Width     int
	Height    int
}

// Validate checks the pasted image is small enough to submit.
func (img *ImageData) Validate() error {
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %d bytes / %.1fMB)",
			len(img.Data), MaxImageSize, float64(MaxImageSize)/(1<<20))
	}

	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}

	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}
