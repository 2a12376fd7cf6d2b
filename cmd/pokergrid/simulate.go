package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokergrid/internal/session"
)

// SimulateCmd runs many sessions per agent and reports score statistics.
type SimulateCmd struct {
	Sessions int    `default:"100" help:"Sessions per agent"`
	Agents   string `default:"normal,smart" help:"Comma-separated agents to compare"`
	Seed     int64  `default:"0" help:"Base RNG seed (0 for random)"`
	Parallel int    `default:"4" help:"Concurrent sessions"`
}

// sessionStats accumulates per-agent results.
type sessionStats struct {
	sessions int
	wins     int
	rounds   int
	sum      float64
	sum2     float64
	best     int
}

func (s *sessionStats) add(r session.Result) {
	score := float64(r.TotalScore)
	s.sessions++
	s.rounds += r.RoundsCleared
	s.sum += score
	s.sum2 += score * score
	if r.Won {
		s.wins++
	}
	if r.TotalScore > s.best {
		s.best = r.TotalScore
	}
}

func (s *sessionStats) mean() float64 {
	if s.sessions == 0 {
		return 0
	}
	return s.sum / float64(s.sessions)
}

func (s *sessionStats) stddev() float64 {
	if s.sessions < 2 {
		return 0
	}
	mean := s.mean()
	return math.Sqrt((s.sum2 - float64(s.sessions)*mean*mean) / float64(s.sessions-1))
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := cli.logger()
	cfg, err := loadGame(cli)
	if err != nil {
		return err
	}
	baseSeed := resolveSeed(c.Seed)

	for _, name := range strings.Split(c.Agents, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		stats := &sessionStats{}
		results := make([]session.Result, c.Sessions)

		eg, ctx := errgroup.WithContext(context.Background())
		eg.SetLimit(c.Parallel)
		for i := 0; i < c.Sessions; i++ {
			eg.Go(func() error {
				// Every session gets its own agent so explanation state
				// and evaluator streams never cross goroutines.
				seed := baseSeed + int64(i)
				ag, err := buildAgent(name, cfg, seed, logger)
				if err != nil {
					return err
				}
				s := session.New(session.Config{
					Game:   cfg,
					Agent:  ag,
					Seed:   seed,
					Logger: logger,
				})
				result, err := s.Run(ctx)
				if err != nil {
					return err
				}
				results[i] = result
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return fmt.Errorf("simulate %s: %w", name, err)
		}

		for _, r := range results {
			stats.add(r)
		}

		fmt.Printf("%s: %d sessions, win rate %.1f%%, mean score %.0f ± %.0f, best %d, avg rounds %.1f\n",
			name, stats.sessions,
			100*float64(stats.wins)/float64(max(1, stats.sessions)),
			stats.mean(), stats.stddev(), stats.best,
			float64(stats.rounds)/float64(max(1, stats.sessions)))
	}
	return nil
}
