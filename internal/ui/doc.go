// Package ui provides the rendering components for the sketchlab TUI.
//
// # Overview
//
// The ui package renders the View Shell using Bubble Tea and Lipgloss. It
// holds no session state of its own: the app package reads a snapshot from
// studio.Session and hands it to the render functions here.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├──────────────────────────┬──────────────────────────┤
//	│                          │                          │
//	│   Sketch panel           │   Result panel           │
//	│   (selected file)        │   (spinner / result)     │
//	│                          │                          │
//	├──────────────────────────┴──────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The Gallery view replaces the two panels with a scrolling list of cards,
// newest first. The log viewer and the response inspector replace them with
// a single full-width viewport.
//
// # Components
//
// Header: application title, active view and endpoint host over a gradient.
//
// Footer: context-aware keyboard shortcuts and transient flash messages.
//
// Generator: the sketch panel and the result panel.
//
// Gallery: history cards with selection.
//
// LogViewer and Inspector: full-width viewports for diagnostics.
//
// Modal: popup container for the states in the modals package.
//
// # Themes
//
// Two palettes are built in, light and dark. SetDarkMode swaps them and
// regenerates every style variable in styles.go.
package ui
