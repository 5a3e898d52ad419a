// Package view turns products into plain view models.
//
// Nothing here draws to the terminal or talks to the network: RenderTable and
// RenderCard are pure functions of their input, so the screen a user sees can
// be asserted on without a running program. The tui package owns drawing.
package view
