package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/patrick-utz/sonorium/internal/shared"
	"github.com/patrick-utz/sonorium/internal/tasks"
	"github.com/patrick-utz/sonorium/internal/ui"
)

// TUI launches the interactive terminal UI for browsing the collection.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	coll, cleanup, err := r.openCollection(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/sonorium-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, log.DebugLevel)
	r.SetLogger(fileLogger)

	config := r.loadConfig(cmd)
	verifier := tasks.NewVerifier(r.httpClient, config.Covers.RequestsPerSecond)

	model := ui.NewModel(ctx, coll, verifier)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
