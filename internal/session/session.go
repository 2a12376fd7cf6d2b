// Package session drives a full game: deal, freeze, redeal, score
// against the round quota, then a shop visit, round after round until
// the player clears every quota or misses one.
package session

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokergrid/internal/agent"
	"github.com/lox/pokergrid/internal/config"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
	"github.com/lox/pokergrid/internal/randutil"
	"github.com/lox/pokergrid/internal/score"
	"github.com/lox/pokergrid/internal/shop"
)

// roundReward is the payout for clearing a quota.
const roundReward = 5

// maxShopActions bounds a single shop visit so a confused agent cannot
// loop forever.
const maxShopActions = 10

// Observer receives session events as they happen. The TUI implements
// this; the simulate command leaves it nil.
type Observer interface {
	RoundStarted(round, quota int)
	GridDealt(g *grid.Grid, frozen []grid.CellRef)
	RoundScored(result RoundResult)
	ShopAction(action agent.Action, explanation string)
}

// Config configures a session run.
type Config struct {
	Game    *config.Config
	Agent   agent.Agent
	Catalog []*joker.Joker
	Seed    int64
	Logger  *log.Logger
	Clock   quartz.Clock
	// StepDelay paces the loop for watch mode; zero runs flat out.
	StepDelay time.Duration
	Observer  Observer
}

// RoundResult records one scored round.
type RoundResult struct {
	Round  int
	Quota  int
	Result score.Result
	Beat   bool
	Money  int
}

// Result summarises a finished session.
type Result struct {
	RoundsCleared int
	TotalScore    int
	Money         int
	Won           bool
	Rounds        []RoundResult
}

// Session owns the per-run mutable state: grid, pipeline, money.
type Session struct {
	cfg      Config
	game     *config.Config
	rng      *rand.Rand
	scorer   *score.Scorer
	pipeline *joker.Pipeline
	logger   *log.Logger
	clock    quartz.Clock
	money    int
}

// New creates a session. Config.Game nil uses defaults; a nil Catalog
// uses the embedded one.
func New(cfg Config) *Session {
	if cfg.Game == nil {
		cfg.Game = config.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = joker.DefaultCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Session{
		cfg:      cfg,
		game:     cfg.Game,
		rng:      randutil.New(cfg.Seed),
		scorer:   score.NewScorer(nil, cfg.Game.Grid.TopK),
		pipeline: joker.NewPipeline(cfg.Game.Shop.JokerSlots),
		logger:   cfg.Logger,
		clock:    cfg.Clock,
		money:    cfg.Game.Session.StartingMoney,
	}
}

// Pipeline exposes the owned jokers for display.
func (s *Session) Pipeline() *joker.Pipeline { return s.pipeline }

// Money returns the current bankroll.
func (s *Session) Money() int { return s.money }

// Run plays rounds until a quota is missed or all quotas are cleared.
func (s *Session) Run(ctx context.Context) (Result, error) {
	var result Result

	for round, quota := range s.game.Session.Quotas {
		rr, err := s.playRound(ctx, round, quota)
		if err != nil {
			return result, err
		}
		result.Rounds = append(result.Rounds, rr)
		result.TotalScore += rr.Result.Total
		result.Money = s.money

		if !rr.Beat {
			s.logger.Info("quota missed, session over",
				"round", round+1, "score", rr.Result.Total, "quota", quota)
			return result, nil
		}
		result.RoundsCleared++

		if round < len(s.game.Session.Quotas)-1 {
			if err := s.shopPhase(ctx); err != nil {
				return result, err
			}
		}
	}

	result.Won = true
	return result, nil
}

func (s *Session) playRound(ctx context.Context, round, quota int) (RoundResult, error) {
	// Growth resets between rounds, never mid-round.
	s.pipeline.ResetRound()

	if s.cfg.Observer != nil {
		s.cfg.Observer.RoundStarted(round+1, quota)
	}

	g := grid.New(s.game.Grid.Rows, s.game.Grid.Cols)
	g.Deal(s.rng)

	frozen := s.cfg.Agent.RecommendFreezes(ctx, g, s.pipeline, s.game.Grid.MaxFreezes)
	applied := s.applyFreezes(g, frozen)
	s.logger.Debug("freeze decision",
		"round", round+1, "frozen", applied, "why", s.cfg.Agent.Explanation())

	if s.cfg.Observer != nil {
		s.cfg.Observer.GridDealt(g, applied)
	}
	if err := s.pause(ctx); err != nil {
		return RoundResult{}, err
	}

	g.Deal(s.rng)
	res := s.scorer.ScoreGrid(g, s.pipeline)

	rr := RoundResult{
		Round:  round + 1,
		Quota:  quota,
		Result: res,
		Beat:   res.Total >= quota,
	}
	if rr.Beat {
		s.money += roundReward
	}
	rr.Money = s.money

	s.logger.Info("round scored",
		"round", round+1, "total", res.Total, "quota", quota, "beat", rr.Beat, "money", s.money)
	if s.cfg.Observer != nil {
		s.cfg.Observer.RoundScored(rr)
	}
	if err := s.pause(ctx); err != nil {
		return RoundResult{}, err
	}
	return rr, nil
}

// applyFreezes validates and applies the agent's plan, honoring the
// freeze budget. Invalid refs are dropped, not fatal.
func (s *Session) applyFreezes(g *grid.Grid, refs []grid.CellRef) []grid.CellRef {
	var applied []grid.CellRef
	for _, ref := range refs {
		if len(applied) >= s.game.Grid.MaxFreezes {
			break
		}
		if g.Freeze(ref) {
			applied = append(applied, ref)
		}
	}
	return applied
}

func (s *Session) shopPhase(ctx context.Context) error {
	sh := shop.New(s.cfg.Catalog, s.rng, s.game.Shop.Slots, s.game.Shop.BaseRerollCost)
	sh.Stock(s.ownedIDs())

	for i := 0; i < maxShopActions; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		view := agent.ShopView{
			Items:      sh.Inventory(),
			RerollCost: sh.RerollCost(),
			Money:      s.money,
			SlotFree:   s.pipeline.HasEmptySlot(),
			Owned:      s.pipeline.Jokers(),
		}
		action := s.cfg.Agent.RecommendShopAction(view)

		if s.cfg.Observer != nil {
			s.cfg.Observer.ShopAction(action, s.cfg.Agent.Explanation())
		}
		if !s.execute(sh, action) {
			return nil
		}
		if err := s.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

// execute applies one shop action, returning false when the visit is
// over. Actions the bankroll or slots cannot support are treated as a
// no-op end of visit rather than an error.
func (s *Session) execute(sh *shop.Shop, action agent.Action) bool {
	switch action.Kind {
	case agent.ActionBuy:
		items := sh.Inventory()
		if action.Index < 0 || action.Index >= len(items) || items[action.Index] == nil {
			return false
		}
		item := items[action.Index]
		if item.Cost > s.money || !s.pipeline.HasEmptySlot() {
			return false
		}
		j := sh.Buy(action.Index)
		s.money -= j.Cost
		s.pipeline.Add(j)
		s.logger.Info("bought joker", "joker", j.Name, "cost", j.Cost, "money", s.money)
		return true

	case agent.ActionSell:
		j := s.pipeline.Remove(action.Index)
		if j == nil {
			return false
		}
		s.money += j.SellValue
		s.logger.Info("sold joker", "joker", j.Name, "value", j.SellValue, "money", s.money)
		return true

	case agent.ActionReroll:
		if sh.RerollCost() > s.money {
			return false
		}
		s.money -= sh.RerollCost()
		sh.Reroll(s.ownedIDs())
		s.logger.Debug("rerolled shop", "money", s.money)
		return true

	default:
		return false
	}
}

func (s *Session) ownedIDs() map[string]bool {
	owned := make(map[string]bool)
	for _, j := range s.pipeline.Jokers() {
		owned[j.ID] = true
	}
	return owned
}

// pause waits StepDelay between visible steps so watch mode is
// followable. Uses the injected clock so tests never sleep.
func (s *Session) pause(ctx context.Context) error {
	if s.cfg.StepDelay <= 0 {
		return ctx.Err()
	}
	fired := make(chan struct{})
	timer := s.clock.AfterFunc(s.cfg.StepDelay, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Describe renders a one-line summary for logs.
func (r Result) Describe() string {
	outcome := "lost"
	if r.Won {
		outcome = "won"
	}
	return fmt.Sprintf("%s after %d rounds, total score %d, money %d",
		outcome, len(r.Rounds), r.TotalScore, r.Money)
}
