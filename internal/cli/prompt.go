package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/catalog/internal/types"
	"github.com/studiowebux/catalog/internal/view"
)

// ErrNoSelection is returned when the picker is closed without a choice
var ErrNoSelection = errors.New("no product selected")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	product types.Product
}

func (i item) FilterValue() string {
	return i.product.Name
}

func (i item) Title() string {
	return fmt.Sprintf("#%d %s  %s", i.product.ID, i.product.Name, view.FormatPrice(i.product.Price))
}

func (i item) Description() string { return i.product.Description }

type pickerModel struct {
	list     list.Model
	choice   *types.Product
	quitting bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the list own keys while its filter prompt is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = nil
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				p := i.product
				m.choice = &p
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newPicker(title string, products []types.Product) pickerModel {
	items := make([]list.Item, 0, len(products))
	for _, p := range products {
		items = append(items, item{product: p})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return pickerModel{list: l}
}

// PickProduct lists the catalog and lets the user choose one product.
// It returns the chosen id as a string, ready for Get/Update/Delete.
func PickProduct(ctx context.Context, env Env, title string) (string, error) {
	products, err := env.Client.List(ctx)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", errors.New(view.EmptyMessage)
	}

	p := tea.NewProgram(newPicker(title, products), tea.WithContext(ctx), tea.WithOutput(env.stderr()))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running picker: %w", err)
	}

	result := finalModel.(pickerModel)
	if result.choice == nil {
		return "", ErrNoSelection
	}
	return view.DataID(*result.choice), nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := i.Title()

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
