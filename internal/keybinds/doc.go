/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions inside a context. A context is the part of the screen
that currently receives keys: the product table, the search box, the create
form, the edit modal, the delete confirmation and so on. Lookups check the
specific context first and then fall back to global.

Global bindings (ctrl+c, F1-F3, alt+1-3) work even while a text input has
focus. Plain keys such as 1/2/3, tab and q are only bound in contexts without
a focused input, so typing into a field never switches tabs.

# Components

Registry (registry.go):
  - Central storage for keybindings
  - Context-aware key matching
  - Multi-key sequence support (e.g., "gg" for go-to-top)

Validator (validator.go):
  - Rejects unknown actions and malformed keys
  - Detects a key listed for two actions in the same section
  - Warns about shadowing and rebound reserved keys

Defaults (defaults.go):
  - The built-in bindings for every context

Config (config.go):
  - Loads ~/.catalog/keybinds.json (comments and trailing commas allowed)
  - Each listed action replaces its default keys

# Configuration

	{
	  "version": "1.0",
	  // x deletes instead of d
	  "table": { "delete": "x", "reload": "r,f5" },
	  "confirm": { "confirm": "y,enter" }
	}

# Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	action, ok := registry.Match(keybinds.ContextTable, msg.String())
*/
package keybinds
