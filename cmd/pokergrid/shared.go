package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokergrid/internal/agent"
	"github.com/lox/pokergrid/internal/config"
	"github.com/lox/pokergrid/internal/evaluator"
	"github.com/lox/pokergrid/internal/score"
)

// loadGame resolves the game configuration from the --config flag.
func loadGame(cli *CLI) (*config.Config, error) {
	if cli.Config == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildAgent constructs a named agent wired to the configured evaluator.
func buildAgent(name string, cfg *config.Config, seed int64, logger *log.Logger) (agent.Agent, error) {
	switch name {
	case "normal":
		return agent.NewNormalAgent(), nil
	case "smart":
		eval := evaluator.New(
			score.NewScorer(nil, cfg.Grid.TopK),
			evaluator.WithSamples(cfg.Evaluator.Samples),
			evaluator.WithWorkers(cfg.Evaluator.Workers),
		)
		return agent.NewSmartAgent(eval, seed, agent.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown agent %q (want normal or smart)", name)
	}
}

// resolveSeed treats 0 as "pick one from the clock".
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
