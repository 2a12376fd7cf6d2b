package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokergrid/internal/session"
	"github.com/lox/pokergrid/internal/tui"
)

// PlayCmd watches an agent play one session in the TUI.
type PlayCmd struct {
	Agent   string `default:"smart" help:"Agent to watch: normal or smart"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	DelayMs int    `default:"600" help:"Pause between visible steps in milliseconds"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := loadGame(cli)
	if err != nil {
		return err
	}

	seed := resolveSeed(c.Seed)
	ag, err := buildAgent(c.Agent, cfg, seed, logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(ag.Name())
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		s := session.New(session.Config{
			Game:      cfg,
			Agent:     ag,
			Seed:      seed,
			Logger:    logger,
			StepDelay: time.Duration(c.DelayMs) * time.Millisecond,
			Observer:  tui.NewObserver(program),
		})
		result, err := s.Run(ctx)
		program.Send(tui.SessionDoneMsg{Result: result, Err: err})
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
