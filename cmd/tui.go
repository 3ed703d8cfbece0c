package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	p := tea.NewProgram(ui.NewModel(r.uiDeps()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func (r *Runner) uiDeps() ui.Deps {
	return ui.Deps{
		Catalog:  r.catalog,
		Goals:    r.goals,
		Missions: r.missions,
		Session:  r.session,
		Now:      r.now,
	}
}
