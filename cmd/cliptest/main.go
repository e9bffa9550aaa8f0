//go:build ignore

// Reads the clipboard the way ctrl+v does and reports the sketch it would
// select. Run with: go run ./cmd/cliptest/main.go
package main

import (
	"fmt"

	"github.com/zhubert/sketchlab/internal/clipboard"
	"github.com/zhubert/sketchlab/internal/sketch"
)

func main() {
	fmt.Println("Reading clipboard...")
	img, err := clipboard.ReadImage()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if img == nil {
		fmt.Println("No image in clipboard")
		return
	}

	up, err := sketch.FromClipboard(img)
	if err != nil {
		fmt.Printf("Rejected: %v\n", err)
		return
	}
	info, err := sketch.Describe(up.Data)
	if err != nil {
		fmt.Printf("Selected %s (%s, %s), not decodable: %v\n", up.Name, up.MediaType, sketch.HumanSize(len(up.Data)), err)
		return
	}
	fmt.Printf("Selected %s: %s, %s\n", up.Name, info, sketch.HumanSize(len(up.Data)))
}
