package agent

import (
	"context"
	"fmt"

	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
)

// NormalAgent plays fixed heuristics with no randomness and no
// simulation. It is the baseline a human or the EV agent is measured
// against.
type NormalAgent struct {
	explanation string
}

// NewNormalAgent creates the heuristic agent.
func NewNormalAgent() *NormalAgent {
	return &NormalAgent{}
}

// Name implements Agent.
func (a *NormalAgent) Name() string { return "normal" }

// Explanation implements Agent.
func (a *NormalAgent) Explanation() string { return a.explanation }

// RecommendFreezes freezes, in priority order, the highest aligned pair,
// else the two highest cards sharing a suit, else nothing.
func (a *NormalAgent) RecommendFreezes(_ context.Context, g *grid.Grid, _ *joker.Pipeline, maxFreezes int) []grid.CellRef {
	if maxFreezes < 2 {
		a.explanation = "freeze budget below a pair, keeping nothing"
		return nil
	}
	if refs, ok := bestAlignedPair(g); ok {
		a.explanation = fmt.Sprintf("freezing aligned pair at %v", refs)
		return refs
	}
	if refs, ok := bestSuitedPair(g); ok {
		a.explanation = fmt.Sprintf("freezing suited pair at %v", refs)
		return refs
	}
	a.explanation = "no pair worth keeping, redealing everything"
	return nil
}

// RecommendShopAction buys the first affordable flat +mult/+chips joker
// when a slot is free, otherwise does nothing. It never sells or
// rerolls.
func (a *NormalAgent) RecommendShopAction(view ShopView) Action {
	if !view.SlotFree {
		a.explanation = "no free joker slot"
		return Action{Kind: ActionNone}
	}
	for i, item := range view.Items {
		if item == nil || item.Cost > view.Money {
			continue
		}
		if item.Growing() {
			continue
		}
		if item.Effect.Kind == joker.AddMult || item.Effect.Kind == joker.AddChips {
			a.explanation = fmt.Sprintf("buying %s for %d", item.Name, item.Cost)
			return Action{Kind: ActionBuy, Index: i}
		}
	}
	a.explanation = "nothing simple and affordable in stock"
	return Action{Kind: ActionNone}
}
