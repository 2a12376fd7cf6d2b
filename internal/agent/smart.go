package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokergrid/internal/evaluator"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/hand"
	"github.com/lox/pokergrid/internal/joker"
)

// SmartAgent decision thresholds. Value scores come from ValueScore.
const (
	// DefaultCandidateCap bounds how many freeze sets get simulated.
	DefaultCandidateCap = 24
	// buyThreshold is the minimum value score worth spending money on.
	buyThreshold = 0.02
	// sellThreshold is the value-score gap that justifies selling an
	// owned joker to fund a better one.
	sellThreshold = 0.05
	// rerollFloor triggers a reroll when nothing in stock scores above it.
	rerollFloor = 0.015
	// growingBoost favours jokers that accumulate value over a round.
	growingBoost = 1.4
)

// SmartAgent chooses freezes by Monte Carlo EV over a bounded candidate
// set and shop actions by a closed-form joker value score.
type SmartAgent struct {
	eval         *evaluator.Evaluator
	seed         int64
	candidateCap int
	logger       *log.Logger
	explanation  string
}

// SmartOption configures a SmartAgent.
type SmartOption func(*SmartAgent)

// WithCandidateCap bounds the freeze candidate set.
func WithCandidateCap(n int) SmartOption {
	return func(a *SmartAgent) { a.candidateCap = n }
}

// WithLogger sets the decision log.
func WithLogger(logger *log.Logger) SmartOption {
	return func(a *SmartAgent) { a.logger = logger }
}

// NewSmartAgent creates the EV agent. A nil evaluator gets defaults;
// seed drives the simulation streams so runs are reproducible.
func NewSmartAgent(eval *evaluator.Evaluator, seed int64, opts ...SmartOption) *SmartAgent {
	if eval == nil {
		eval = evaluator.New(nil)
	}
	a := &SmartAgent{
		eval:         eval,
		seed:         seed,
		candidateCap: DefaultCandidateCap,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Agent.
func (a *SmartAgent) Name() string { return "smart" }

// Explanation implements Agent.
func (a *SmartAgent) Explanation() string { return a.explanation }

// RecommendFreezes simulates a bounded set of candidate freeze plans and
// returns the arg-max by estimated EV. The first candidate seen wins
// ties, so the empty plan is preferred when freezing buys nothing.
func (a *SmartAgent) RecommendFreezes(ctx context.Context, g *grid.Grid, pipeline *joker.Pipeline, maxFreezes int) []grid.CellRef {
	candidates := a.freezeCandidates(g, maxFreezes)

	best, evs, err := a.eval.BestFreeze(ctx, g, candidates, pipeline, a.seed)
	if err != nil {
		a.explanation = fmt.Sprintf("evaluation aborted (%v), redealing everything", err)
		return nil
	}
	if best < 0 {
		a.explanation = "no candidates, redealing everything"
		return nil
	}

	a.explanation = fmt.Sprintf("freeze %v, EV %.1f over %d candidates", candidates[best], evs[best], len(candidates))
	a.logger.Debug("freeze decision", "candidates", len(candidates), "best", candidates[best], "ev", evs[best])
	return candidates[best]
}

// freezeCandidates builds the candidate plans: keep nothing, the best
// aligned pair, the best suited pair, the single highest card, and the
// top two cards, deduplicated and truncated to maxFreezes and the cap.
func (a *SmartAgent) freezeCandidates(g *grid.Grid, maxFreezes int) [][]grid.CellRef {
	candidates := [][]grid.CellRef{nil}
	add := func(refs []grid.CellRef) {
		if len(refs) == 0 || len(refs) > maxFreezes {
			return
		}
		for _, existing := range candidates {
			if refsEqual(existing, refs) {
				return
			}
		}
		candidates = append(candidates, refs)
	}

	if refs, ok := bestAlignedPair(g); ok {
		add(refs)
	}
	if refs, ok := bestSuitedPair(g); ok {
		add(refs)
	}
	add(highestCards(g, 1))
	if maxFreezes >= 2 {
		add(highestCards(g, 2))
	}

	if len(candidates) > a.candidateCap {
		candidates = candidates[:a.candidateCap]
	}
	return candidates
}

func refsEqual(a, b []grid.CellRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RecommendShopAction scores every item in stock, then in order: buys
// the best affordable item into a free slot, sells a clearly weaker
// owned joker to fund it, rerolls when the whole stock is weak, or does
// nothing.
func (a *SmartAgent) RecommendShopAction(view ShopView) Action {
	bestIdx, bestValue := -1, 0.0
	for i, item := range view.Items {
		if item == nil {
			continue
		}
		v := ValueScore(item, view.Owned)
		if bestIdx == -1 || v > bestValue {
			bestIdx, bestValue = i, v
		}
	}

	if bestIdx >= 0 && bestValue >= buyThreshold {
		item := view.Items[bestIdx]
		if view.SlotFree && item.Cost <= view.Money {
			a.explanation = fmt.Sprintf("buying %s (value %.2f)", item.Name, bestValue)
			return Action{Kind: ActionBuy, Index: bestIdx}
		}
		if !view.SlotFree {
			if idx, worst := a.weakestOwned(view.Owned); idx >= 0 {
				funded := item.Cost <= view.Money+view.Owned[idx].SellValue
				if bestValue-worst > sellThreshold && funded {
					a.explanation = fmt.Sprintf("selling %s (value %.2f) to fund %s (value %.2f)",
						view.Owned[idx].Name, worst, item.Name, bestValue)
					return Action{Kind: ActionSell, Index: idx}
				}
			}
		}
	}

	if bestValue < rerollFloor && view.RerollCost <= view.Money {
		a.explanation = fmt.Sprintf("stock is weak (best %.3f), rerolling for %d", bestValue, view.RerollCost)
		return Action{Kind: ActionReroll}
	}

	a.explanation = "holding: nothing in stock beats the current setup"
	return Action{Kind: ActionNone}
}

func (a *SmartAgent) weakestOwned(owned []*joker.Joker) (int, float64) {
	idx, worst := -1, 0.0
	for i, j := range owned {
		v := ValueScore(j, owned)
		if idx == -1 || v < worst {
			idx, worst = i, v
		}
	}
	return idx, worst
}

// rarityValues weight scarcer jokers up slightly; scarcity correlates
// with stronger effects in the catalog.
var rarityValues = map[joker.Rarity]float64{
	joker.Common:    1.0,
	joker.Uncommon:  1.3,
	joker.Rare:      1.6,
	joker.Legendary: 2.0,
}

// ValueScore is the closed-form desirability of a joker:
//
//	rarity × bonus × (1 + condition frequency + synergy) × 10 / max(1, cost)
//
// boosted for growing jokers. It is a ranking heuristic, not an EV; only
// relative order matters.
func ValueScore(j *joker.Joker, owned []*joker.Joker) float64 {
	rarity, ok := rarityValues[j.Rarity]
	if !ok {
		rarity = 1.0
	}

	value := rarity * bonusWeight(j.Effect) * (1 + conditionFrequency(j.Condition) + synergy(j, owned))
	value *= 10 / float64(max(1, j.Cost))
	if j.Growing() {
		value *= growingBoost
	}
	return value
}

// bonusWeight converts an effect into comparable units: one point of
// mult is worth roughly ten chips, and mult multipliers dominate both.
func bonusWeight(e joker.Effect) float64 {
	switch e.Kind {
	case joker.AddMult:
		return e.Value
	case joker.AddChips:
		return e.Value * 0.1
	case joker.MulMult:
		return e.Value * 4
	case joker.AddChipsAndMult:
		return float64(e.Mult) + float64(e.Chips)*0.1
	default:
		return 0
	}
}

// conditionFrequency estimates how often a condition holds, scaled so an
// unconditional joker gets the largest bonus.
func conditionFrequency(c joker.Condition) float64 {
	switch c.Kind {
	case joker.CondNone:
		return 1.0
	case joker.CondSuit:
		return 0.5
	case joker.CondRankParity:
		return 0.5
	case joker.CondFaceCard, joker.CondFirstFace:
		return 0.4
	case joker.CondRank:
		return 0.1 * float64(len(c.Ranks))
	case joker.CondHandType:
		switch c.HandType {
		case hand.OnePair, hand.TwoPair:
			return 0.5
		case hand.ThreeOfAKind:
			return 0.3
		default:
			return 0.1
		}
	default:
		return 0
	}
}

// synergy rewards stacking jokers that watch the same condition, since
// one strong line then triggers several of them.
func synergy(j *joker.Joker, owned []*joker.Joker) float64 {
	bonus := 0.0
	for _, o := range owned {
		if o == nil || o.ID == j.ID {
			continue
		}
		if o.Condition.Kind == j.Condition.Kind && o.Condition.Kind != joker.CondNone {
			bonus += 0.15
		}
	}
	return bonus
}
