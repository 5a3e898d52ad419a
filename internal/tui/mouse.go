package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse handles left clicks: outside an open modal closes it, on the
// tab bar activates the clicked tab
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.state.ModalOpen() {
		if !m.modalRect().contains(msg.X, msg.Y) {
			m.closeModal()
		}
		return nil
	}

	if msg.Y == TabBarRow {
		for _, zone := range m.tabZones() {
			if msg.X >= zone.x0 && msg.X < zone.x1 {
				return m.activateTab(zone.tab)
			}
		}
	}

	return nil
}
