package joker

import (
	"testing"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/hand"
)

func line(specs ...string) []deck.Card {
	out := make([]deck.Card, len(specs))
	for i, s := range specs {
		out[i] = deck.MustParseCard(s)
	}
	return out
}

func classified(specs ...string) (hand.Hand, []deck.Card) {
	cards := line(specs...)
	return hand.Classify(cards, hand.DefaultChips), cards
}

func alwaysAddMult(v float64) *Joker {
	return &Joker{
		ID:      "test_add_mult",
		Name:    "Test Add Mult",
		Trigger: TriggerAlways,
		Effect:  Effect{Kind: AddMult, Value: v},
	}
}

func TestApplyAlwaysAddMult(t *testing.T) {
	p := NewPipeline(5)
	p.Add(alwaysAddMult(5))

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	chips, mult := p.Apply(h, cards, 10, 1)

	// base_chips=10, mult=1 scores 10 x (1+5) = 60 after the pipeline.
	if chips != 10 || mult != 6 {
		t.Errorf("Apply() = (%d, %d), want (10, 6)", chips, mult)
	}
	if chips*mult != 60 {
		t.Errorf("score = %d, want 60", chips*mult)
	}
}

func TestAddMultStacksAdditively(t *testing.T) {
	p := NewPipeline(5)
	p.Add(alwaysAddMult(5))
	p.Add(alwaysAddMult(5))

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	_, mult := p.Apply(h, cards, 10, 1)

	if mult != 11 {
		t.Errorf("two +5 mult jokers: mult = %d, want 11", mult)
	}
}

func TestMulMultMultiplies(t *testing.T) {
	p := NewPipeline(5)
	p.Add(alwaysAddMult(5))
	p.Add(&Joker{
		ID:      "x2",
		Trigger: TriggerAlways,
		Effect:  Effect{Kind: MulMult, Value: 2},
	})

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	_, mult := p.Apply(h, cards, 10, 1)

	// (1+5) x 2, not 1+5+2.
	if mult != 12 {
		t.Errorf("mult = %d, want 12", mult)
	}
}

func TestHandTypeCondition(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{
		ID:        "jolly",
		Trigger:   TriggerOnScored,
		Condition: Condition{Kind: CondHandType, HandType: hand.OnePair},
		Effect:    Effect{Kind: AddMult, Value: 8},
	})

	pair, pairCards := classified("8h", "8d", "2s", "5c", "Kh")
	if _, mult := p.Apply(pair, pairCards, 10, 1); mult != 9 {
		t.Errorf("pair line: mult = %d, want 9", mult)
	}

	high, highCards := classified("2h", "5d", "9s", "Jc", "Kh")
	if _, mult := p.Apply(high, highCards, 3, 1); mult != 1 {
		t.Errorf("high card line should not trigger pair joker: mult = %d, want 1", mult)
	}
}

func TestPerCardSuitCondition(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{
		ID:          "greedy",
		Trigger:     TriggerOnScored,
		Condition:   Condition{Kind: CondSuit, Suit: deck.Diamonds},
		Effect:      Effect{Kind: AddMult, Value: 3},
		Application: PerCard,
	})

	h, cards := classified("2d", "5d", "9d", "Jc", "Kh")
	_, mult := p.Apply(h, cards, 10, 1)

	// 3 diamonds x +3 mult.
	if mult != 10 {
		t.Errorf("mult = %d, want 10", mult)
	}
}

func TestPerLineSuitConditionAppliesOnce(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{
		ID:          "one_shot",
		Trigger:     TriggerOnScored,
		Condition:   Condition{Kind: CondSuit, Suit: deck.Diamonds},
		Effect:      Effect{Kind: AddMult, Value: 3},
		Application: PerLine,
	})

	h, cards := classified("2d", "5d", "9d", "Jc", "Kh")
	if _, mult := p.Apply(h, cards, 10, 1); mult != 4 {
		t.Errorf("per-line effect should apply once: mult = %d, want 4", mult)
	}
}

func TestChipsAndMultScalesByMatchCount(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{
		ID:        "scholar",
		Trigger:   TriggerOnScored,
		Condition: Condition{Kind: CondRank, Ranks: []deck.Rank{deck.Ace}},
		Effect:    Effect{Kind: AddChipsAndMult, Chips: 20, Mult: 4},
	})

	h, cards := classified("Ah", "Ad", "9s", "Jc", "Kh")
	chips, mult := p.Apply(h, cards, 20, 1)

	// Two aces: +40 chips, +8 mult.
	if chips != 60 || mult != 9 {
		t.Errorf("Apply() = (%d, %d), want (60, 9)", chips, mult)
	}
}

func TestParityConditions(t *testing.T) {
	even := &Joker{
		ID:          "even_steven",
		Trigger:     TriggerOnScored,
		Condition:   Condition{Kind: CondRankParity, Parity: Even},
		Effect:      Effect{Kind: AddMult, Value: 4},
		Application: PerCard,
	}
	odd := &Joker{
		ID:          "odd_todd",
		Trigger:     TriggerOnScored,
		Condition:   Condition{Kind: CondRankParity, Parity: Odd},
		Effect:      Effect{Kind: AddChips, Value: 31},
		Application: PerCard,
	}

	p := NewPipeline(5)
	p.Add(even)
	p.Add(odd)

	// 2,T even; 3,A odd; K neither.
	h, cards := classified("2h", "Td", "3s", "Ac", "Kh")
	chips, mult := p.Apply(h, cards, 10, 1)

	if mult != 1+4*2 {
		t.Errorf("mult = %d, want 9", mult)
	}
	if chips != 10+31*2 {
		t.Errorf("chips = %d, want 72", chips)
	}
}

func TestFirstFaceOverride(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{
		ID:        "photograph",
		Trigger:   TriggerOnScored,
		Condition: Condition{Kind: CondFirstFace},
		Effect:    Effect{Kind: MulMult, Value: 2},
	})

	// Face card present: the generic MulMult dispatch doubles, then the
	// first-face override doubles again.
	h, cards := classified("2h", "Jd", "9s", "5c", "Kh")
	if _, mult := p.Apply(h, cards, 10, 1); mult != 4 {
		t.Errorf("face line: mult = %d, want 4", mult)
	}

	// No face card: the condition never matches, nothing fires.
	h2, cards2 := classified("2h", "4d", "9s", "5c", "7h")
	if _, mult := p.Apply(h2, cards2, 10, 1); mult != 1 {
		t.Errorf("faceless line: mult = %d, want 1", mult)
	}
}

func TestGrowingJokerReadsBeforeGrowing(t *testing.T) {
	g := &Joker{
		ID:      "runner",
		Trigger: TriggerAlways,
		Effect:  Effect{Kind: AddChips, Value: 15},
		Growth:  &Growth{Step: 15},
	}
	p := NewPipeline(5)
	p.Add(g)

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")

	// First trigger: accumulated is 0, so the effect adds nothing, then grows.
	chips, _ := p.Apply(h, cards, 10, 1)
	if chips != 10 {
		t.Errorf("first trigger: chips = %d, want 10", chips)
	}
	if g.Growth.Accumulated != 15 {
		t.Errorf("accumulated = %g, want 15", g.Growth.Accumulated)
	}

	// Second trigger: previous growth applies, then grows again.
	chips, _ = p.Apply(h, cards, 10, 1)
	if chips != 25 {
		t.Errorf("second trigger: chips = %d, want 25", chips)
	}
	if g.Growth.Accumulated != 30 {
		t.Errorf("accumulated = %g, want 30", g.Growth.Accumulated)
	}
}

func TestGrowthPersistsUntilResetRound(t *testing.T) {
	g := &Joker{
		ID:      "green",
		Trigger: TriggerAlways,
		Effect:  Effect{Kind: AddMult, Value: 1},
		Growth:  &Growth{Step: 1},
	}
	p := NewPipeline(5)
	p.Add(g)

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	for i := 0; i < 10; i++ {
		p.Apply(h, cards, 10, 1)
	}
	if g.Growth.Accumulated != 10 {
		t.Errorf("accumulated = %g, want 10", g.Growth.Accumulated)
	}

	p.ResetRound()
	if g.Growth.Accumulated != 0 {
		t.Errorf("accumulated after ResetRound = %g, want 0", g.Growth.Accumulated)
	}
}

func TestCloneIsolatesGrowth(t *testing.T) {
	g := &Joker{
		ID:      "runner",
		Trigger: TriggerAlways,
		Effect:  Effect{Kind: AddChips, Value: 15},
		Growth:  &Growth{Step: 15},
	}
	p := NewPipeline(5)
	p.Add(g)

	clone := p.Clone()
	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	clone.Apply(h, cards, 10, 1)
	clone.Apply(h, cards, 10, 1)

	if g.Growth.Accumulated != 0 {
		t.Errorf("growth leaked into original: accumulated = %g, want 0", g.Growth.Accumulated)
	}
	if clone.Jokers()[0].Growth.Accumulated != 30 {
		t.Errorf("clone accumulated = %g, want 30", clone.Jokers()[0].Growth.Accumulated)
	}
}

func TestUnknownEncodingsFailClosed(t *testing.T) {
	p := NewPipeline(5)
	p.Add(&Joker{ID: "held_only", Trigger: TriggerNever, Effect: Effect{Kind: AddMult, Value: 100}})
	p.Add(&Joker{
		ID:        "unknown_cond",
		Trigger:   TriggerOnScored,
		Condition: Condition{Kind: CondUnknown},
		Effect:    Effect{Kind: AddMult, Value: 100},
	})
	p.Add(&Joker{ID: "unknown_effect", Trigger: TriggerAlways, Effect: Effect{Kind: EffectUnknown, Value: 100}})
	// A later joker must still run after the duds.
	p.Add(alwaysAddMult(5))

	h, cards := classified("2h", "5d", "9s", "Jc", "Kh")
	chips, mult := p.Apply(h, cards, 10, 1)

	if chips != 10 || mult != 6 {
		t.Errorf("Apply() = (%d, %d), want (10, 6)", chips, mult)
	}
}

func TestPipelineSlots(t *testing.T) {
	p := NewPipeline(2)
	if !p.Add(alwaysAddMult(1)) || !p.Add(alwaysAddMult(2)) {
		t.Fatal("expected both adds to succeed")
	}
	if p.Add(alwaysAddMult(3)) {
		t.Error("expected add beyond slot limit to fail")
	}
	if p.HasEmptySlot() {
		t.Error("expected no empty slot")
	}

	removed := p.Remove(0)
	if removed == nil || removed.Effect.Value != 1 {
		t.Errorf("Remove(0) = %v", removed)
	}
	if p.Count() != 1 || !p.HasEmptySlot() {
		t.Errorf("after remove: count = %d", p.Count())
	}
	if p.Remove(5) != nil {
		t.Error("out-of-range remove should return nil")
	}
}
