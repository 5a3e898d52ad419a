package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form field indices
const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Price"}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// productForm is the name/description/price field group shared by the
// create panel and the edit modal
type productForm struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	focused bool
}

func newProductForm() productForm {
	f := productForm{}
	f.inputs[fieldName] = newTextInput("Product name", 100)
	f.inputs[fieldDescription] = newTextInput("Short description", 255)
	f.inputs[fieldPrice] = newTextInput("0.00", 20)
	return f
}

// Values returns the raw field values
func (f productForm) Values() (name, description, price string) {
	return f.inputs[fieldName].Value(), f.inputs[fieldDescription].Value(), f.inputs[fieldPrice].Value()
}

// SetValues fills the fields
func (f *productForm) SetValues(name, description, price string) {
	f.inputs[fieldName].SetValue(name)
	f.inputs[fieldDescription].SetValue(description)
	f.inputs[fieldPrice].SetValue(price)
}

// Reset empties every field and moves focus back to the first one
func (f *productForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(fieldName)
}

// Focused reports whether one of the fields receives keys
func (f productForm) Focused() bool {
	return f.focused
}

// Focus gives keys to the current field
func (f *productForm) Focus() tea.Cmd {
	f.focused = true
	return f.setFocus(f.focus)
}

// Blur takes keys away from every field
func (f *productForm) Blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Move shifts focus by delta fields, wrapping around
func (f *productForm) Move(delta int) tea.Cmd {
	return f.setFocus(((f.focus+delta)%fieldCount + fieldCount) % fieldCount)
}

func (f *productForm) setFocus(index int) tea.Cmd {
	f.focus = index
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == index && f.focused {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// Update forwards a key to the focused field
func (f *productForm) Update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the labelled fields
func (f productForm) View(width int) string {
	labelWidth := 0
	for _, label := range fieldLabels {
		labelWidth = max(labelWidth, lipgloss.Width(label))
	}

	inputWidth := max(10, width-labelWidth-4)
	lines := make([]string, 0, fieldCount)
	for i, input := range f.inputs {
		label := styleLabel.Width(labelWidth).Render(fieldLabels[i])
		input.Width = inputWidth

		box := styleInput
		if f.focused && i == f.focus {
			box = styleInputFocused
		}
		lines = append(lines, label+"  "+box.Render(input.View()))
	}
	return strings.Join(lines, "\n")
}
