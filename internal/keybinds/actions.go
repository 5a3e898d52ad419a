package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextTable   Context = "table"   // View-all tab, product table focused
	ContextFilter  Context = "filter"  // Table filter input
	ContextSearch  Context = "search"  // Search tab, id input focused
	ContextCard    Context = "card"    // Search tab, result card focused
	ContextPanel   Context = "panel"   // Create tab, no field focused
	ContextForm    Context = "form"    // Create tab form fields
	ContextModal   Context = "modal"   // Edit product modal
	ContextConfirm Context = "confirm" // Delete confirmation
	ContextHistory Context = "history" // Activity log viewer
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Tab switching
	ActionTabViewAll Action = "tab_view_all" // Activate the view-all tab
	ActionTabSearch  Action = "tab_search"   // Activate the search tab
	ActionTabCreate  Action = "tab_create"   // Activate the create tab
	ActionTabNext    Action = "tab_next"     // Activate the next tab
	ActionTabPrev    Action = "tab_prev"     // Activate the previous tab

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Product actions, resolved against the selected item's data-id
	ActionEdit   Action = "edit"   // Open the edit modal
	ActionDelete Action = "delete" // Ask to delete
	ActionCopy   Action = "copy"   // Copy product JSON to clipboard
	ActionReload Action = "reload" // Reload the product list

	// Input focus
	ActionFocusInput Action = "focus_input" // Focus the tab's text input
	ActionBlurInput  Action = "blur_input"  // Leave the text input
	ActionOpenFilter Action = "open_filter" // Focus the table filter
	ActionClearInput Action = "clear_input" // Clear and leave the input

	// Form actions
	ActionNextField Action = "next_field" // Focus next form field
	ActionPrevField Action = "prev_field" // Focus previous form field
	ActionSubmit    Action = "submit"     // Submit form or search

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)

	// Activity log viewer
	ActionOpenHistory Action = "open_history" // Open the activity log
	ActionScrollUp    Action = "scroll_up"    // Scroll viewer up
	ActionScrollDown  Action = "scroll_down"  // Scroll viewer down
)

// KnownActions lists every action the application handles
var KnownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true,
	ActionTabViewAll: true, ActionTabSearch: true, ActionTabCreate: true,
	ActionTabNext: true, ActionTabPrev: true,
	ActionNavigateUp: true, ActionNavigateDown: true,
	ActionGoToTop: true, ActionGoToBottom: true, ActionGoToTopPrepare: true,
	ActionEdit: true, ActionDelete: true, ActionCopy: true, ActionReload: true,
	ActionFocusInput: true, ActionBlurInput: true, ActionOpenFilter: true, ActionClearInput: true,
	ActionNextField: true, ActionPrevField: true, ActionSubmit: true,
	ActionCloseModal: true, ActionConfirm: true, ActionCancel: true,
	ActionOpenHistory: true, ActionScrollUp: true, ActionScrollDown: true,
}

// AllContexts lists every context in display order
var AllContexts = []Context{
	ContextGlobal,
	ContextTable,
	ContextFilter,
	ContextSearch,
	ContextCard,
	ContextPanel,
	ContextForm,
	ContextModal,
	ContextConfirm,
	ContextHistory,
}
