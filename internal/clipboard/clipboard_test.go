package clipboard

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int, asJPEG bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.Black)
	}
	var buf bytes.Buffer
	var err error
	if asJPEG {
		err = jpeg.Encode(&buf, img, nil)
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeToPNG(t *testing.T) {
	tests := []struct {
		name   string
		asJPEG bool
	}{
		{"png", false},
		{"jpeg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := encodeTestImage(t, 40, 30, tt.asJPEG)

			got, err := decodeToPNG(raw)
			if err != nil {
				t.Fatalf("decodeToPNG failed: %v", err)
			}
			if got.MediaType != "image/png" {
				t.Errorf("MediaType = %q, want image/png", got.MediaType)
			}
			if got.Width != 40 || got.Height != 30 {
				t.Errorf("dimensions = %dx%d, want 40x30", got.Width, got.Height)
			}
			if !bytes.HasPrefix(got.Data, []byte("\x89PNG")) {
				t.Error("output should be PNG encoded")
			}
		})
	}
}

func TestDecodeToPNG_Garbage(t *testing.T) {
	if _, err := decodeToPNG([]byte("definitely not an image")); err == nil {
		t.Error("expected error for undecodable bytes")
	}
}

func TestImageData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		img     ImageData
		wantErr string
	}{
		{"ok", ImageData{Data: make([]byte, 1024), Width: 512, Height: 512}, ""},
		{"too large", ImageData{Data: make([]byte, MaxImageSize+1), Width: 10, Height: 10}, "too large"},
		{"too wide", ImageData{Data: make([]byte, 10), Width: MaxImageDimension + 1, Height: 10}, "dimensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestImageData_SizeKB(t *testing.T) {
	img := ImageData{Data: make([]byte, 4096)}
	if img.SizeKB() != 4 {
		t.Errorf("SizeKB() = %d, want 4", img.SizeKB())
	}
}
