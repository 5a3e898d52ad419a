package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or ctx is canceled
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx

	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		// Canceled by the caller (signal), not a failure
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	return nil
}
