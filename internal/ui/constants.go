// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// NavBarHeight is the height of the log viewer file navigation bar
	NavBarHeight = 1

	// GalleryCardHeight is the rendered height of one gallery card, borders included
	GalleryCardHeight = 6

	// MinRefWidth is the narrowest a truncated image reference is rendered
	MinRefWidth = 16

	// DefaultWrapWidth is the default width for text wrapping when the
	// terminal size is not known yet
	DefaultWrapWidth = 80
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is the width of the settings modal
	ModalWidthWide = 80

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// HelpModalMaxVisible is the number of help rows shown before scrolling
	HelpModalMaxVisible = 16
)
