/*
Package tui implements the terminal view controller for the product catalog.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, messages and the Update loop
  - state.go: ViewState, the active tab and open modal as enum values
  - keys.go: Keyboard input handling and keybind routing
  - mouse.go: Click handling (tab bar, click outside a modal)
  - actions.go: API commands and their result handlers
  - render.go, modals.go: Drawing of the view models from package view
  - forms.go: The name/description/price field group

# Event Delegation

Edit and delete controls are never bound per row. The focused row or card
is rendered to its view model and the matching action's data-id is handed
to a single dispatcher, which opens the editor or the delete confirmation.

# Threading Model

Update runs on Bubble Tea's event loop. Every API call runs inside a
tea.Cmd and reports back through a message; nothing blocks input. All calls
share one context (see RequestState) that is canceled on quit. List reloads
carry a sequence number and responses older than the latest reload are
dropped.

# Notifications

A notification replaces the previous one and is dismissed after the
configured delay. Each dismissal timer carries the sequence number of the
notification it was scheduled for, so a timer never clears a newer one.
*/
package tui
