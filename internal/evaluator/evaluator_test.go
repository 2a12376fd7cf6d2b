package evaluator

import (
	"context"
	"testing"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
	"github.com/lox/pokergrid/internal/randutil"
	"github.com/lox/pokergrid/internal/score"
)

func dealtGrid(seed int64) *grid.Grid {
	g := grid.New(5, 5)
	g.Deal(randutil.New(seed))
	return g
}

func TestEvaluateFreezeDeterministicPerSeed(t *testing.T) {
	e := New(nil, WithSamples(50))
	g := dealtGrid(1)

	a, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 99)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 99)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed gave %g then %g", a, b)
	}

	c, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Errorf("different seeds both gave %g", a)
	}
}

func TestEvaluateFreezeZeroSamples(t *testing.T) {
	e := New(nil, WithSamples(0))
	ev, err := e.EvaluateFreeze(context.Background(), dealtGrid(1), nil, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ev != 0 {
		t.Errorf("EV = %g, want 0 with no samples", ev)
	}
}

func TestEvaluateFreezeCancellation(t *testing.T) {
	e := New(nil, WithSamples(10_000))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EvaluateFreeze(ctx, dealtGrid(1), nil, nil, 1)
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestFreezingStrongCellsRaisesEV(t *testing.T) {
	// Plant four aces in row 0 and freeze them. Keeping most of a Four of
	// a Kind must beat a full redeal by a wide margin.
	g := dealtGrid(2)
	refs := make([]grid.CellRef, 4)
	for c := 0; c < 4; c++ {
		g.SetCard(0, c, deck.Card{Suit: deck.Suit(c), Rank: deck.Ace})
		refs[c] = grid.CellRef{Row: 0, Col: c}
	}

	e := New(nil, WithSamples(400))
	frozen, err := e.EvaluateFreeze(context.Background(), g, refs, nil, 7)
	if err != nil {
		t.Fatal(err)
	}
	loose, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 7)
	if err != nil {
		t.Fatal(err)
	}
	if frozen <= loose {
		t.Errorf("frozen aces EV %g <= full redeal EV %g", frozen, loose)
	}
}

func TestBestFreezePicksStrongCandidate(t *testing.T) {
	g := dealtGrid(3)
	refs := make([]grid.CellRef, 4)
	for c := 0; c < 4; c++ {
		g.SetCard(0, c, deck.Card{Suit: deck.Suit(c), Rank: deck.Ace})
		refs[c] = grid.CellRef{Row: 0, Col: c}
	}

	e := New(nil, WithSamples(300))
	candidates := [][]grid.CellRef{
		nil,  // full redeal
		refs, // keep the aces
	}
	best, evs, err := e.BestFreeze(context.Background(), g, candidates, nil, 11)
	if err != nil {
		t.Fatal(err)
	}
	if best != 1 {
		t.Errorf("best = %d (evs %v), want 1", best, evs)
	}
	if len(evs) != 2 {
		t.Fatalf("len(evs) = %d, want 2", len(evs))
	}
}

func TestParallelEstimateIsDeterministic(t *testing.T) {
	e := New(nil, WithSamples(128), WithWorkers(4))
	g := dealtGrid(4)

	a, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.EvaluateFreeze(context.Background(), g, nil, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("parallel estimate not deterministic: %g vs %g", a, b)
	}
}

func TestEvaluateFreezeDoesNotMutateCaller(t *testing.T) {
	g := dealtGrid(5)
	g.Freeze(grid.CellRef{Row: 4, Col: 4})
	before := g.At(0, 0).Card

	p := joker.NewPipeline(5)
	growing := &joker.Joker{
		ID:      "runner",
		Trigger: joker.TriggerAlways,
		Effect:  joker.Effect{Kind: joker.AddChips, Value: 15},
		Growth:  &joker.Growth{Step: 15},
	}
	p.Add(growing)

	e := New(score.NewScorer(nil, 3), WithSamples(20))
	if _, err := e.EvaluateFreeze(context.Background(), g, []grid.CellRef{{Row: 0, Col: 0}}, p, 1); err != nil {
		t.Fatal(err)
	}

	if g.At(0, 0).Card != before {
		t.Error("caller grid was redealt")
	}
	if g.FrozenCount() != 1 || !g.At(4, 4).Frozen {
		t.Error("caller freeze flags were rewritten")
	}
	if growing.Growth.Accumulated != 0 {
		t.Errorf("growth leaked from simulation: %g", growing.Growth.Accumulated)
	}
}
