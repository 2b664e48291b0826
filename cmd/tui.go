package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/feed"
	"github.com/wrenhollow/reel/internal/shared"
	"github.com/wrenhollow/reel/internal/ui"
)

// Feed launches the interactive terminal UI for the recommendation feed.
func (r *Runner) Feed(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/reel-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	controller := feed.NewController(r.client, r.manager, r.cache, fileLogger)
	controller.SetPrefetchMargin(r.config.Feed.PrefetchMargin)

	tracker := feed.NewTracker(r.client, fileLogger)
	tracker.SetViewThreshold(r.config.ViewThreshold())

	renewCtx, cancelRenew := context.WithCancel(ctx)
	defer cancelRenew()
	go r.manager.RunRenewal(renewCtx)

	model := ui.NewModel(ctx, r.manager, controller, tracker)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
