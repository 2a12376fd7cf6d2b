package joker

import (
	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/hand"
)

// DefaultMaxSlots is how many jokers a player can hold at once.
const DefaultMaxSlots = 5

// Pipeline holds the active jokers in registration order and applies them
// to scored lines. It owns the per-joker growth state; everything else it
// touches is read-only.
type Pipeline struct {
	jokers   []*Joker
	maxSlots int
}

// NewPipeline creates an empty pipeline with the given slot limit.
// A non-positive limit falls back to DefaultMaxSlots.
func NewPipeline(maxSlots int) *Pipeline {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	return &Pipeline{maxSlots: maxSlots}
}

// Add appends a joker. Returns false if all slots are taken.
func (p *Pipeline) Add(j *Joker) bool {
	if len(p.jokers) >= p.maxSlots {
		return false
	}
	p.jokers = append(p.jokers, j)
	return true
}

// Remove removes and returns the joker at index, or nil if out of range.
func (p *Pipeline) Remove(index int) *Joker {
	if index < 0 || index >= len(p.jokers) {
		return nil
	}
	j := p.jokers[index]
	p.jokers = append(p.jokers[:index], p.jokers[index+1:]...)
	return j
}

// Jokers returns the active jokers in registration order. The returned
// slice is shared; callers must not reorder it.
func (p *Pipeline) Jokers() []*Joker {
	return p.jokers
}

// Count returns the number of active jokers.
func (p *Pipeline) Count() int {
	return len(p.jokers)
}

// MaxSlots returns the slot limit.
func (p *Pipeline) MaxSlots() int {
	return p.maxSlots
}

// HasEmptySlot reports whether another joker can be added.
func (p *Pipeline) HasEmptySlot() bool {
	return len(p.jokers) < p.maxSlots
}

// Clone returns a deep copy with independently growable joker state.
// The Monte Carlo evaluator clones the pipeline once per sample.
func (p *Pipeline) Clone() *Pipeline {
	out := &Pipeline{maxSlots: p.maxSlots}
	out.jokers = make([]*Joker, len(p.jokers))
	for i, j := range p.jokers {
		out.jokers[i] = j.Clone()
	}
	return out
}

// ResetRound zeroes all accumulated growth. Growth persists across every
// Apply call within a round and is reset only here, never implicitly.
func (p *Pipeline) ResetRound() {
	for _, j := range p.jokers {
		if j.Growth != nil {
			j.Growth.Accumulated = 0
		}
	}
}

// Apply runs the pipeline over one scored line, transforming the line's
// (chips, mult) pair. cards must be the line's cards in grid order, not
// the hand's rank-sorted order: the first-face override depends on it.
//
// Jokers with unrecognised triggers, conditions or effects never fire;
// the pipeline always continues to the next joker.
func (p *Pipeline) Apply(h hand.Hand, cards []deck.Card, chips, mult int) (int, int) {
	for _, j := range p.jokers {
		if j.Trigger != TriggerAlways && j.Trigger != TriggerOnScored {
			continue
		}
		if j.Trigger == TriggerOnScored && !j.Condition.Matches(h, cards) {
			continue
		}

		chips, mult = applyEffect(j, cards, chips, mult)

		if j.Growth != nil {
			j.Growth.Accumulated += j.Growth.Step
		}
	}
	return chips, mult
}

func applyEffect(j *Joker, cards []deck.Card, chips, mult int) (int, int) {
	value := j.EffectiveValue()

	if j.Application == PerCard {
		count := j.Condition.MatchCount(cards)
		switch j.Effect.Kind {
		case AddMult:
			mult += int(value) * count
		case AddChips:
			chips += int(value) * count
		case AddChipsAndMult:
			chips += j.Effect.Chips * count
			mult += j.Effect.Mult * count
		}
	} else {
		switch j.Effect.Kind {
		case AddMult:
			mult += int(value)
		case AddChips:
			chips += int(value)
		case MulMult:
			mult = int(float64(mult) * value)
		case AddChipsAndMult:
			// Both halves scale by matching-card count even per-line.
			count := j.Condition.MatchCount(cards)
			chips += j.Effect.Chips * count
			mult += j.Effect.Mult * count
		}
	}

	// First-face override: on top of the generic dispatch above, the
	// first face card in grid order multiplies mult exactly once.
	if j.Condition.Kind == CondFirstFace {
		for _, c := range cards {
			if c.IsFaceCard() {
				mult = int(float64(mult) * j.Effect.Value)
				break
			}
		}
	}

	return chips, mult
}
