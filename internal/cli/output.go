package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/types"
	"github.com/studiowebux/catalog/internal/view"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// resolveFormat picks text for terminals and JSON for pipes when no format
// was asked for
func resolveFormat(w io.Writer, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if f, ok := w.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return FormatText
		}
	}
	return FormatJSON
}

// encode writes v as JSON or YAML
func encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (must be json, yaml, or text)", format)
	}
}

func writeProducts(w io.Writer, format string, products []types.Product) error {
	if format != FormatText {
		return encode(w, format, products)
	}
	_, err := fmt.Fprintln(w, renderTable(view.RenderTable(products)))
	return err
}

func writeProduct(w io.Writer, format string, product types.Product) error {
	if format != FormatText {
		return encode(w, format, product)
	}
	_, err := fmt.Fprintln(w, renderCard(view.RenderCard(product)))
	return err
}

// writeValue prints a filter/query result. Shell query output is printed
// as is; text falls back to JSON since the shape is arbitrary.
func writeValue(w io.Writer, format string, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	if format == FormatText {
		format = FormatJSON
	}
	return encode(w, format, v)
}

func writeCalls(w io.Writer, format string, calls []types.Call) error {
	if format != FormatText {
		return encode(w, format, calls)
	}
	if len(calls) == 0 {
		_, err := fmt.Fprintln(w, "No API calls recorded yet")
		return err
	}

	rows := make([][]string, 0, len(calls))
	for _, call := range calls {
		status := fmt.Sprintf("%d", call.Status)
		switch {
		case call.Status == 0:
			status = errorStyle.Render("ERR")
		case api.IsSuccessStatus(call.Status):
			status = okStyle.Render(status)
		default:
			status = errorStyle.Render(status)
		}
		rows = append(rows, []string{
			call.Timestamp.Format("2006-01-02 15:04:05"),
			call.Method,
			call.Path,
			status,
			api.FormatDuration(call.DurationMs),
			call.Error,
		})
	}

	_, err := fmt.Fprintln(w, newTable([]string{"Time", "Method", "Path", "Status", "Duration", "Error"}, rows))
	return err
}

func writeStats(w io.Writer, format string, stats []history.Stats) error {
	if format != FormatText {
		return encode(w, format, stats)
	}
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No API calls recorded yet")
		return err
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Method,
			s.Path,
			fmt.Sprintf("%d", s.TotalCalls),
			okStyle.Render(fmt.Sprintf("%d", s.SuccessCount)),
			errorStyle.Render(fmt.Sprintf("%d", s.ErrorCount+s.NetworkErrors)),
			api.FormatDuration(int64(s.AvgDurationMs)),
			api.FormatDuration(s.MaxDurationMs),
			s.LastCalled.Format("2006-01-02 15:04:05"),
		})
	}

	headers := []string{"Method", "Endpoint", "Calls", "OK", "Failed", "Avg", "Max", "Last called"}
	_, err := fmt.Fprintln(w, newTable(headers, rows))
	return err
}

// renderTable draws the product table without its action column
func renderTable(t view.Table) string {
	headers := t.Headers[:len(t.Headers)-1]
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, row.Cells)
	}
	return newTable(headers, rows)
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func renderCard(c view.Card) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(c.Title))
	for _, f := range c.Fields {
		fmt.Fprintf(&b, "\n%s: %s", labelStyle.Render(f.Label), f.Value)
	}
	return b.String()
}
