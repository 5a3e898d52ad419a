package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/types"
)

// HistoryState encapsulates the activity log viewer state
type HistoryState struct {
	mu sync.RWMutex

	entries []types.Call
	view    viewport.Model
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{
		entries: []types.Call{},
		view:    viewport.New(80, 20),
	}
}

// GetEntries returns a copy of the entries slice
func (s *HistoryState) GetEntries() []types.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.Call, len(s.entries))
	copy(result, s.entries)
	return result
}

// SetEntries replaces the entries and refreshes the viewer content
func (s *HistoryState) SetEntries(entries []types.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.view.SetContent(formatCalls(entries))
	s.view.GotoTop()
}

// Resize sets the viewer dimensions
func (s *HistoryState) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Width = width
	s.view.Height = height
}

// ScrollUp scrolls the viewer up by n lines
func (s *HistoryState) ScrollUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScrollUp(n)
}

// ScrollDown scrolls the viewer down by n lines
func (s *HistoryState) ScrollDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScrollDown(n)
}

// View renders the viewer
func (s *HistoryState) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.View()
}

// formatCalls renders one line per call, newest first
func formatCalls(calls []types.Call) string {
	if len(calls) == 0 {
		return styleSubtle.Render("No API calls recorded yet")
	}

	var b strings.Builder
	for i, call := range calls {
		if i > 0 {
			b.WriteString("\n")
		}

		status := fmt.Sprintf("%d", call.Status)
		switch {
		case call.Status == 0:
			status = styleError.Render("ERR")
		case api.IsSuccessStatus(call.Status):
			status = styleSuccess.Render(status)
		default:
			status = styleError.Render(status)
		}

		fmt.Fprintf(&b, "%s  %-6s %-24s %s %8s",
			call.Timestamp.Format("2006-01-02 15:04:05"),
			call.Method,
			call.Path,
			status,
			api.FormatDuration(call.DurationMs),
		)
		if call.Error != "" {
			b.WriteString("  " + styleSubtle.Render(call.Error))
		}
	}
	return b.String()
}
