package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/catalog/internal/keybinds"
	"github.com/studiowebux/catalog/internal/view"
)

// rect is a screen rectangle in cells
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// modalBox renders the open modal without placement
func (m *Model) modalBox() string {
	switch m.state.Modal() {
	case ModalEdit:
		return m.renderEditModal()
	case ModalConfirmDelete:
		return m.renderConfirmModal()
	case ModalHistory:
		return m.renderHistoryModal()
	}
	return ""
}

// placeModal centers a modal box on the screen
func (m *Model) placeModal(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// modalRect returns where placeModal puts the open modal
func (m *Model) modalRect() rect {
	box := m.modalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return rect{
		x: centerOffset(m.width, w),
		y: centerOffset(m.height, h),
		w: w,
		h: h,
	}
}

// centerOffset mirrors lipgloss.Place centering, which puts the rounded
// half of the gap after the box
func centerOffset(total, size int) int {
	gap := total - size
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*float64(lipgloss.Center)))
}

func (m *Model) modalWidth() int {
	width := ModalWidth
	if m.width > 0 {
		width = min(width, m.width-ModalWidthMargin)
	}
	return max(width, 20)
}

// renderModalWithFooter renders a bordered modal with a title, body and footer
func renderModalWithFooter(title, body, footer string, width int, color lipgloss.AdaptiveColor) string {
	content := styleTitle.Render(title) + "\n\n" + body + "\n\n" + styleSubtle.Render(footer)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(width).
		Padding(1, 2).
		Render(content)
}

// renderEditModal renders the edit product overlay
func (m *Model) renderEditModal() string {
	width := m.modalWidth()
	closeKeys := m.keybinds.GetBindingString(keybinds.ContextModal, keybinds.ActionCloseModal)

	title := "Edit Product"
	closeControl := styleSubtle.Render("[" + closeKeys + "] ×")
	titleWidth := width - 4 - lipgloss.Width(title)
	titleLine := title + lipgloss.PlaceHorizontal(max(titleWidth, lipgloss.Width(closeControl)), lipgloss.Right, closeControl)

	var banner string
	if n := m.renderNotification(); n != "" && m.notification.Kind == view.NotifyError {
		banner = n + "\n"
	}

	body := banner +
		styleLabel.Render("ID") + "  " + styleSubtle.Render(strconv.FormatInt(m.editID, 10)) + "\n" +
		m.editForm.View(width-4)

	footer := strings.Join([]string{
		m.keybinds.GetBindingString(keybinds.ContextModal, keybinds.ActionSubmit) + " save",
		m.keybinds.GetBindingString(keybinds.ContextModal, keybinds.ActionNextField) + " next field",
		closeKeys + " close",
	}, " | ")

	return renderModalWithFooter(titleLine, body, footer, width, colorBlue)
}

// renderConfirmModal renders the delete confirmation prompt
func (m *Model) renderConfirmModal() string {
	footer := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm) + " yes | " +
		m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel) + " no"

	return renderModalWithFooter("Delete Product", view.MsgConfirmDelete, footer, m.modalWidth(), colorRed)
}

// historyViewSize returns the activity log viewer dimensions for the window
func (m *Model) historyViewSize() (int, int) {
	return max(20, m.width-ModalWidthMargin-4), max(3, m.height-ModalHeightMargin-ModalOverhead)
}

// renderHistoryModal renders the activity log viewer
func (m *Model) renderHistoryModal() string {
	footer := m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionScrollUp) + "/" +
		m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionScrollDown) + " scroll | " +
		m.keybinds.GetBindingString(keybinds.ContextHistory, keybinds.ActionCloseModal) + " close"

	return renderModalWithFooter("Activity Log", m.historyState.View(), footer, max(20, m.width-ModalWidthMargin), colorBlue)
}
