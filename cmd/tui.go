package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/tui"
	"github.com/mertens-software-gmbh/todo/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(cfg, st), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Refresh when another process edits the list. Watch failures are
	// non-fatal: the TUI just loses live reload.
	go func() {
		_ = watcher.Watch(ctx, st.Dir(), func() {
			p.Send(tui.ReloadMsg{})
		})
	}()

	_, err = p.Run()
	return err
}
