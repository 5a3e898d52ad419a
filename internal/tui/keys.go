package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/catalog/internal/keybinds"
	"github.com/studiowebux/catalog/internal/view"
)

// keyContext returns the keybinding context for the focused part of the screen
func (m *Model) keyContext() keybinds.Context {
	switch m.state.Modal() {
	case ModalEdit:
		return keybinds.ContextModal
	case ModalConfirmDelete:
		return keybinds.ContextConfirm
	case ModalHistory:
		return keybinds.ContextHistory
	}

	switch m.state.ActiveTab() {
	case TabSearch:
		if m.searchInput.Focused() {
			return keybinds.ContextSearch
		}
		return keybinds.ContextCard
	case TabCreate:
		if m.createForm.Focused() {
			return keybinds.ContextForm
		}
		return keybinds.ContextPanel
	default:
		if m.filterActive {
			return keybinds.ContextFilter
		}
		return keybinds.ContextTable
	}
}

// handleKeyPress routes a key to its bound action, or to the focused text
// input when the key is not bound in the current context
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	ctx := m.keyContext()

	action, ok, partial := m.keybinds.MatchMultiKey(ctx, msg.String())
	if partial {
		return nil
	}
	if ok {
		return m.handleAction(ctx, action)
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) handleAction(ctx keybinds.Context, action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionTabViewAll:
		return m.activateTab(TabViewAll)
	case keybinds.ActionTabSearch:
		return m.activateTab(TabSearch)
	case keybinds.ActionTabCreate:
		return m.activateTab(TabCreate)
	case keybinds.ActionTabNext:
		return m.activateTab(m.state.nextTab(1))
	case keybinds.ActionTabPrev:
		return m.activateTab(m.state.nextTab(-1))

	case keybinds.ActionNavigateUp:
		m.tableIndex--
		m.clampTableIndex()
	case keybinds.ActionNavigateDown:
		m.tableIndex++
		m.clampTableIndex()
	case keybinds.ActionGoToTop:
		m.tableIndex = 0
	case keybinds.ActionGoToBottom:
		m.tableIndex = len(m.visibleProducts()) - 1
		m.clampTableIndex()

	case keybinds.ActionEdit:
		return m.triggerSelected(view.ActionEdit)
	case keybinds.ActionDelete:
		return m.triggerSelected(view.ActionDelete)
	case keybinds.ActionCopy:
		return m.copySelected()
	case keybinds.ActionReload:
		return m.loadProducts()

	case keybinds.ActionOpenFilter:
		m.filterActive = true
		return m.filterInput.Focus()
	case keybinds.ActionFocusInput:
		return m.focusInput()
	case keybinds.ActionBlurInput:
		m.blurInput(ctx)
	case keybinds.ActionClearInput:
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.filterActive = false
		m.clampTableIndex()

	case keybinds.ActionNextField:
		return m.activeForm().Move(1)
	case keybinds.ActionPrevField:
		return m.activeForm().Move(-1)
	case keybinds.ActionSubmit:
		switch ctx {
		case keybinds.ContextSearch:
			return m.searchProduct()
		case keybinds.ContextForm:
			return m.createProduct()
		case keybinds.ContextModal:
			return m.updateProduct()
		}

	case keybinds.ActionCloseModal:
		m.closeModal()
	case keybinds.ActionConfirm:
		if m.state.Modal() == ModalConfirmDelete {
			return m.deleteProduct()
		}
	case keybinds.ActionCancel:
		m.closeModal()

	case keybinds.ActionOpenHistory:
		return m.openHistory()
	case keybinds.ActionScrollUp:
		m.historyState.ScrollUp(1)
	case keybinds.ActionScrollDown:
		m.historyState.ScrollDown(1)
	}

	return nil
}

// activeForm returns the form receiving field navigation
func (m *Model) activeForm() *productForm {
	if m.state.Modal() == ModalEdit {
		return &m.editForm
	}
	return &m.createForm
}

func (m *Model) focusInput() tea.Cmd {
	switch m.state.ActiveTab() {
	case TabSearch:
		return m.searchInput.Focus()
	case TabCreate:
		return m.createForm.Focus()
	}
	return nil
}

func (m *Model) blurInput(ctx keybinds.Context) {
	switch ctx {
	case keybinds.ContextFilter:
		m.filterInput.Blur()
		m.filterActive = false
	case keybinds.ContextSearch:
		m.searchInput.Blur()
	case keybinds.ContextForm:
		m.createForm.Blur()
	}
}

// updateFocusedInput forwards an unbound key to whichever text input has focus
func (m *Model) updateFocusedInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case m.state.Modal() == ModalEdit:
		cmd = m.editForm.Update(msg)
	case m.state.ModalOpen():
		return nil
	case m.state.ActiveTab() == TabViewAll && m.filterActive:
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.tableIndex = 0
	case m.state.ActiveTab() == TabSearch && m.searchInput.Focused():
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.state.ActiveTab() == TabCreate:
		cmd = m.createForm.Update(msg)
	}

	return cmd
}
