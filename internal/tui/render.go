package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/catalog/internal/keybinds"
	"github.com/studiowebux/catalog/internal/view"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorBlue  = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLabel = lipgloss.NewStyle().
			Bold(true)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}).
			Background(colorCyan)

	styleTabInactive = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorGray)

	styleInput = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorGray)

	styleInputFocused = styleInput.
				BorderForeground(colorCyan)

	styleNotifySuccess = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGreen).
				Foreground(colorGreen)

	styleNotifyError = styleNotifySuccess.
				BorderForeground(colorRed).
				Foreground(colorRed)

	styleAction = lipgloss.NewStyle().
			Foreground(colorBlue)
)

// renderMain renders the title, tab bar, active panel and status bar
func (m *Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	panelWidth := m.width - PanelBorderWidth
	contentWidth := panelWidth - PanelPadding

	var sections []string
	if banner := m.renderNotification(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, m.renderPanel(contentWidth))

	// Leave room for title, tab bar, and status
	panelHeight := max(1, m.height-TabBarRow-1-PanelBorderWidth-StatusBarLines)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Padding(0, 1).
		Width(panelWidth).
		Height(panelHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styleTitle.Render("Product Catalog"),
		m.renderTabBar(),
		panel,
		m.renderStatusBar(),
	)
}

// tabZone is the horizontal extent of a tab label on the tab bar row
type tabZone struct {
	tab    Tab
	x0, x1 int // x1 exclusive
}

func renderTabLabel(t Tab, active bool) string {
	if active {
		return styleTabActive.Render(t.String())
	}
	return styleTabInactive.Render(t.String())
}

// tabZones computes where each tab label sits, for mouse hit testing
func (m *Model) tabZones() []tabZone {
	zones := make([]tabZone, 0, len(Tabs))
	x := 0
	for _, t := range Tabs {
		w := lipgloss.Width(renderTabLabel(t, t == m.state.ActiveTab()))
		zones = append(zones, tabZone{tab: t, x0: x, x1: x + w})
		x += w + TabGap
	}
	return zones
}

func (m *Model) renderTabBar() string {
	labels := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		labels = append(labels, renderTabLabel(t, t == m.state.ActiveTab()))
	}
	return strings.Join(labels, strings.Repeat(" ", TabGap))
}

// renderNotification renders the banner at the top of the active panel
func (m *Model) renderNotification() string {
	if m.notification == nil {
		return ""
	}
	if m.notification.Kind == view.NotifyError {
		return styleNotifyError.Render(m.notification.Message)
	}
	return styleNotifySuccess.Render(m.notification.Message)
}

func (m *Model) renderPanel(width int) string {
	switch m.state.ActiveTab() {
	case TabSearch:
		return m.renderSearchPanel(width)
	case TabCreate:
		return m.renderCreatePanel(width)
	default:
		return m.renderTablePanel(width)
	}
}

func renderActions(actions []view.Action) string {
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, "["+a.Kind.String()+"]")
	}
	return strings.Join(labels, " ")
}

// renderTablePanel draws the product table view model
func (m *Model) renderTablePanel(width int) string {
	if m.loading && !m.loaded {
		return styleSubtle.Render("Loading products...")
	}

	model := view.RenderTable(m.visibleProducts())

	rows := make([][]string, 0, len(model.Rows))
	for _, row := range model.Rows {
		cells := append([]string{}, row.Cells...)
		if !row.Placeholder {
			cells = append(cells, renderActions(row.Actions))
		}
		rows = append(rows, cells)
	}

	selected := m.tableIndex
	placeholder := len(model.Rows) == 1 && model.Rows[0].Placeholder
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleSubtle).
		Headers(model.Headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleLabel.Padding(0, 1)
			case placeholder:
				return styleSubtle.Padding(0, 1)
			case row == selected && m.keyContext() == keybinds.ContextTable:
				return styleSelected.Padding(0, 1)
			case col == len(model.Headers)-1:
				return styleAction.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})

	var b strings.Builder
	if m.filterActive || m.filterInput.Value() != "" {
		b.WriteString("Filter: " + m.filterInput.View() + "\n")
	}
	b.WriteString(t.Render())
	return b.String()
}

// renderCard draws the card view model
func renderCard(card view.Card, width int) string {
	lines := []string{styleTitle.Render(card.Title)}
	for _, f := range card.Fields {
		lines = append(lines, styleLabel.Render(f.Label+":")+" "+f.Value)
	}
	lines = append(lines, "", styleAction.Render(renderActions(card.Actions)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(min(width, ModalWidth)).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSearchPanel(width int) string {
	box := styleInput
	if m.searchInput.Focused() {
		box = styleInputFocused
	}
	input := m.searchInput
	input.Width = min(30, width)

	sections := []string{
		styleLabel.Render("Product ID") + "  " + box.Render(input.View()),
		"",
	}

	switch {
	case m.searchResult != nil:
		sections = append(sections, renderCard(view.RenderCard(*m.searchResult), width))
	case m.searchNotFound:
		sections = append(sections, styleError.Render(view.MsgNotFound))
	}

	return strings.Join(sections, "\n")
}

func (m *Model) renderCreatePanel(width int) string {
	submit := fmt.Sprintf("[%s] Add Product", m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionSubmit))
	return m.createForm.View(min(width, ModalWidth)) + "\n\n" + styleAction.Render(submit)
}

// renderStatusBar renders key hints for the focused context
func (m *Model) renderStatusBar() string {
	ctx := m.keyContext()
	hint := func(action keybinds.Action, label string) string {
		keys := m.keybinds.GetBindingString(ctx, action)
		if keys == "unbound" {
			return ""
		}
		return keys + " " + label
	}

	var hints []string
	add := func(action keybinds.Action, label string) {
		if h := hint(action, label); h != "" {
			hints = append(hints, h)
		}
	}

	add(keybinds.ActionTabViewAll, "all")
	add(keybinds.ActionTabSearch, "search")
	add(keybinds.ActionTabCreate, "add")
	switch ctx {
	case keybinds.ContextTable:
		add(keybinds.ActionEdit, "edit")
		add(keybinds.ActionDelete, "delete")
		add(keybinds.ActionOpenFilter, "filter")
		add(keybinds.ActionCopy, "copy")
		add(keybinds.ActionOpenHistory, "log")
	case keybinds.ContextCard:
		add(keybinds.ActionEdit, "edit")
		add(keybinds.ActionDelete, "delete")
		add(keybinds.ActionFocusInput, "search")
	case keybinds.ContextSearch, keybinds.ContextForm:
		add(keybinds.ActionSubmit, "submit")
		add(keybinds.ActionBlurInput, "leave input")
	case keybinds.ContextFilter:
		add(keybinds.ActionBlurInput, "apply")
		add(keybinds.ActionClearInput, "clear")
	case keybinds.ContextPanel:
		add(keybinds.ActionFocusInput, "edit form")
	}
	add(keybinds.ActionQuit, "quit")

	left := styleSubtle.Render(strings.Join(hints, " | "))
	right := styleSubtle.Render(m.client.BaseURL())

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}
