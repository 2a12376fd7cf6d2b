// Package agent implements the decision agents that pick freeze sets and
// shop actions. Agents read only the public grid, joker and shop
// surfaces so their play can be audited against a human's.
package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
)

// ActionKind enumerates what an agent can ask the shop to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionBuy
	ActionSell
	ActionReroll
)

func (k ActionKind) String() string {
	switch k {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	case ActionReroll:
		return "reroll"
	default:
		return "none"
	}
}

// Action is an agent's shop decision. Index addresses the shop inventory
// for buys and the owned jokers for sells.
type Action struct {
	Kind  ActionKind
	Index int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionBuy, ActionSell:
		return fmt.Sprintf("%s %d", a.Kind, a.Index)
	default:
		return a.Kind.String()
	}
}

// ShopView is everything an agent may consult when choosing a shop
// action. Items holds the current stock with nil for sold slots.
type ShopView struct {
	Items      []*joker.Joker
	RerollCost int
	Money      int
	SlotFree   bool
	Owned      []*joker.Joker
}

// Agent chooses freeze sets before a redeal and actions in the shop.
type Agent interface {
	Name() string

	// RecommendFreezes returns the cells to lock before the redeal,
	// at most maxFreezes of them. An empty result means redeal everything.
	RecommendFreezes(ctx context.Context, g *grid.Grid, pipeline *joker.Pipeline, maxFreezes int) []grid.CellRef

	// RecommendShopAction picks one shop action for the current view.
	RecommendShopAction(view ShopView) Action

	// Explanation describes the most recent decision for diagnostics.
	Explanation() string
}

// bestAlignedPair finds the highest-ranked pair of equal-rank cards that
// share a row or column. Ties resolve to the earliest cells in row-major
// order.
func bestAlignedPair(g *grid.Grid) ([]grid.CellRef, bool) {
	placed := g.Cards()
	var best []grid.CellRef
	bestRank := deck.Rank(0)

	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			if a.Card.Rank != b.Card.Rank {
				continue
			}
			if a.Ref.Row != b.Ref.Row && a.Ref.Col != b.Ref.Col {
				continue
			}
			if a.Card.Rank > bestRank {
				bestRank = a.Card.Rank
				best = []grid.CellRef{a.Ref, b.Ref}
			}
		}
	}
	return best, best != nil
}

// bestSuitedPair finds the two highest-ranked cards sharing a suit,
// compared by top card then second card.
func bestSuitedPair(g *grid.Grid) ([]grid.CellRef, bool) {
	type placed struct {
		card deck.Card
		ref  grid.CellRef
	}
	bySuit := make(map[deck.Suit][]placed)
	for _, pc := range g.Cards() {
		bySuit[pc.Card.Suit] = append(bySuit[pc.Card.Suit], placed{pc.Card, pc.Ref})
	}

	var best []grid.CellRef
	var bestTop, bestSecond deck.Rank
	for _, suit := range []deck.Suit{deck.Spades, deck.Hearts, deck.Diamonds, deck.Clubs} {
		cards := bySuit[suit]
		if len(cards) < 2 {
			continue
		}
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].card.Rank > cards[j].card.Rank
		})
		top, second := cards[0], cards[1]
		if top.card.Rank > bestTop || (top.card.Rank == bestTop && second.card.Rank > bestSecond) {
			bestTop, bestSecond = top.card.Rank, second.card.Rank
			best = []grid.CellRef{top.ref, second.ref}
		}
	}
	return best, best != nil
}

// highestCards returns the refs of the n highest-ranked cards on the
// grid, row-major order breaking rank ties.
func highestCards(g *grid.Grid, n int) []grid.CellRef {
	placed := g.Cards()
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Card.Rank > placed[j].Card.Rank
	})
	if n > len(placed) {
		n = len(placed)
	}
	refs := make([]grid.CellRef, n)
	for i := 0; i < n; i++ {
		refs[i] = placed[i].Ref
	}
	return refs
}
