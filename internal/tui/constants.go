package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Rows above the active panel
	TitleRow  = 0 // Application title
	TabBarRow = 1 // Tab bar, one label per tab

	// Panel frame
	PanelBorderWidth = 2 // Left + right border
	PanelPadding     = 2 // Left + right padding
	StatusBarLines   = 1

	// Modal dimensions
	ModalWidth        = 60 // Preferred edit/confirm modal width
	ModalWidthMargin  = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 4  // Standard vertical margin (m.height - 4)
	ModalOverhead     = 8  // Title, footer, padding and border lines around the history viewer

	// Tab label separator width
	TabGap = 1
)

// Messages that only exist in the terminal client
const (
	msgHistoryDisabled = "Activity log is disabled"
	msgHistoryFailed   = "Error loading activity log."
)
