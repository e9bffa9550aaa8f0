package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/sketchlab/internal/imageref"
	"github.com/zhubert/sketchlab/internal/studio"
)

func testHistory(n int) []studio.Result {
	base := time.Date(2025, 3, 14, 15, 9, 0, 0, time.Local)
	history := make([]studio.Result, n)
	for i := range history {
		// newest first
		history[i] = studio.Result{
			ID:           uuid.New(),
			OriginalRef:  imageref.Ref(fmt.Sprintf("%s%d", imageref.Scheme, i)),
			GeneratedRef: fmt.Sprintf("https://cdn.example.com/%d.png", n-i),
			Timestamp:    base.Add(time.Duration(n-i) * time.Minute),
			SourceName:   fmt.Sprintf("sketch-%d.png", n-i),
		}
	}
	return history
}

func TestFormatGalleryTime(t *testing.T) {
	ts := time.Date(2025, 3, 4, 9, 5, 0, 0, time.Local)
	if got := FormatGalleryTime(ts); got != "Mar 4, 2025, 09:05 AM" {
		t.Errorf("FormatGalleryTime() = %q", got)
	}
}

func TestGallery_Empty(t *testing.T) {
	g := NewGallery()
	view := stripANSI(g.View(nil, 80, 20))

	if !strings.Contains(view, "Gallery (0)") {
		t.Error("empty gallery should show a zero count")
	}
	if !strings.Contains(view, "No generations yet") {
		t.Error("empty gallery should explain itself")
	}
}

func TestGallery_NewestFirst(t *testing.T) {
	g := NewGallery()
	view := stripANSI(g.View(testHistory(3), 100, 40))

	first := strings.Index(view, "#3")
	last := strings.Index(view, "#1")
	if first < 0 || last < 0 {
		t.Fatalf("expected numbered cards, got %q", view)
	}
	if first > last {
		t.Error("newest card should be rendered first")
	}
}

func TestGallery_Selection(t *testing.T) {
	g := NewGallery()
	n := 3

	g.MoveUp()
	if g.Selected() != 0 {
		t.Error("MoveUp at the top should stay at 0")
	}

	g.MoveDown(n)
	g.MoveDown(n)
	g.MoveDown(n)
	if g.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2 after clamping at the bottom", g.Selected())
	}

	g.Clamp(1)
	if g.Selected() != 0 {
		t.Errorf("Clamp(1) should select 0, got %d", g.Selected())
	}

	g.Select(10, n)
	if g.Selected() != 2 {
		t.Errorf("Select past the end should clamp, got %d", g.Selected())
	}

	g.Reset()
	if g.Selected() != 0 {
		t.Error("Reset should select the newest result")
	}
}

func TestGallery_ScrollsToSelection(t *testing.T) {
	g := NewGallery()
	history := testHistory(10)

	g.Select(9, len(history))
	view := stripANSI(g.View(history, 100, 1+2*GalleryCardHeight))

	if !strings.Contains(view, "#1") {
		t.Error("the oldest card should be visible once selected")
	}
	if strings.Contains(view, "#10") {
		t.Error("the newest card should have scrolled out of view")
	}
}

func TestGallery_MoreIndicator(t *testing.T) {
	g := NewGallery()
	view := stripANSI(g.View(testHistory(5), 100, 1+GalleryCardHeight))

	if !strings.Contains(view, "4 more below") {
		t.Errorf("expected a more-below hint, got %q", view)
	}
}
