package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/lttslabs/etlctl/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive console.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// API notifications go to the TUI, not the logger, while it owns the
	// terminal.
	notifier := &ui.Notifier{}
	r.notifier = notifier

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/etlctl-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if err := r.bootstrap(); err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.sess, r.nav, ui.Services{
		Auth:        r.auth,
		DataSources: r.dataSources,
		Variables:   r.variables,
		Missions:    r.missions,
		Files:       r.files,
		RunLogs:     r.runLogs,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
