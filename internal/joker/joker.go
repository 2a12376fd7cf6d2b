// Package joker implements the conditional score modifier pipeline.
//
// A joker is a condition→effect rule applied to every scored line. The
// condition and effect encodings are closed variants decoded once at
// catalog load time; anything the pipeline does not recognise fails
// closed (the joker simply never triggers).
package joker

import (
	"fmt"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/hand"
)

// Rarity buckets control shop pricing and inventory weighting.
type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Legendary Rarity = "Legendary"
)

// Trigger controls when a joker is considered at all.
type Trigger int

const (
	// TriggerNever is the fail-closed zero value for unrecognised encodings.
	TriggerNever Trigger = iota
	// TriggerAlways fires on every scored line.
	TriggerAlways
	// TriggerOnScored fires when the joker's condition matches the line.
	TriggerOnScored
)

// ConditionKind discriminates the closed condition variant.
type ConditionKind int

const (
	CondNone ConditionKind = iota
	CondHandType
	CondSuit
	CondRank
	CondRankParity
	CondFaceCard
	CondFirstFace
	// CondUnknown marks an encoding the loader did not recognise.
	// It never matches, so the joker never fires.
	CondUnknown
)

// Parity selects even or odd ranks for CondRankParity.
type Parity int

const (
	Even Parity = iota
	Odd
)

// Condition is a closed tagged variant; Kind selects which field is live.
type Condition struct {
	Kind     ConditionKind
	HandType hand.Type
	Suit     deck.Suit
	Ranks    []deck.Rank
	Parity   Parity
}

// Matches reports whether the condition holds for a scored line.
// Unknown kinds never match.
func (c Condition) Matches(h hand.Hand, cards []deck.Card) bool {
	switch c.Kind {
	case CondNone:
		return true
	case CondHandType:
		return h.Type == c.HandType
	case CondSuit, CondRank, CondRankParity, CondFaceCard, CondFirstFace:
		return c.MatchCount(cards) > 0
	default:
		return false
	}
}

// MatchCount counts the cards in the line satisfying a per-card condition.
// Conditions without a per-card reading (hand type, none) count zero.
func (c Condition) MatchCount(cards []deck.Card) int {
	n := 0
	for _, card := range cards {
		if c.matchesCard(card) {
			n++
		}
	}
	return n
}

func (c Condition) matchesCard(card deck.Card) bool {
	switch c.Kind {
	case CondSuit:
		return card.Suit == c.Suit
	case CondRank:
		for _, r := range c.Ranks {
			if card.Rank == r {
				return true
			}
		}
		return false
	case CondRankParity:
		if c.Parity == Even {
			return card.Rank.IsEven()
		}
		return card.Rank.IsOdd()
	case CondFaceCard, CondFirstFace:
		return card.IsFaceCard()
	default:
		return false
	}
}

// EffectKind discriminates the closed effect variant.
type EffectKind int

const (
	// EffectUnknown is the fail-closed zero value.
	EffectUnknown EffectKind = iota
	AddMult
	AddChips
	MulMult
	AddChipsAndMult
)

// Effect describes how a triggered joker transforms (chips, mult).
// Value is the flat amount for AddMult/AddChips and the factor for
// MulMult; Chips/Mult carry the two halves of AddChipsAndMult.
type Effect struct {
	Kind  EffectKind
	Value float64
	Chips int
	Mult  int
}

// Application controls how an effect scales over the line's cards.
type Application int

const (
	// PerLine applies the effect once for the whole line.
	PerLine Application = iota
	// PerCard scales flat effects by the number of condition-matching cards.
	PerCard
	// FirstOnly applies to the first matching card only (Photograph-style).
	FirstOnly
)

// Growth holds the mutable state of a growing joker. The effective bonus
// used when the joker triggers is the value accumulated by *previous*
// triggers; Step is added afterwards, so a fresh growing joker
// contributes nothing until its second trigger.
type Growth struct {
	Step        float64
	Accumulated float64
}

// Joker is one modifier instance. Growth state aside, jokers are
// immutable after catalog load.
type Joker struct {
	ID          string
	Name        string
	Rarity      Rarity
	Cost        int
	SellValue   int
	Trigger     Trigger
	Condition   Condition
	Effect      Effect
	Application Application
	Growth      *Growth
	Notes       string
}

// Growing reports whether the joker accumulates bonus across triggers.
func (j *Joker) Growing() bool {
	return j.Growth != nil
}

// EffectiveValue returns the flat value the effect applies right now:
// the accumulated bonus for growing jokers, the nominal value otherwise.
func (j *Joker) EffectiveValue() float64 {
	if j.Growth != nil {
		return j.Growth.Accumulated
	}
	return j.Effect.Value
}

// Clone returns an independent copy. Monte Carlo samples clone the active
// jokers so growth inside one resampled grid never leaks into the next.
func (j *Joker) Clone() *Joker {
	out := *j
	if j.Growth != nil {
		g := *j.Growth
		out.Growth = &g
	}
	if j.Condition.Ranks != nil {
		out.Condition.Ranks = append([]deck.Rank(nil), j.Condition.Ranks...)
	}
	return &out
}

// String renders a short display form, e.g. "Greedy Joker (+3 Mult per ♦)".
func (j *Joker) String() string {
	return fmt.Sprintf("%s (%s)", j.Name, j.Describe())
}

// Describe renders the joker's effect for shop and TUI display.
func (j *Joker) Describe() string {
	var effect string
	switch j.Effect.Kind {
	case AddMult:
		effect = fmt.Sprintf("+%g Mult", j.Effect.Value)
	case AddChips:
		effect = fmt.Sprintf("+%g Chips", j.Effect.Value)
	case MulMult:
		effect = fmt.Sprintf("×%g Mult", j.Effect.Value)
	case AddChipsAndMult:
		effect = fmt.Sprintf("+%d Chips and +%d Mult", j.Effect.Chips, j.Effect.Mult)
	default:
		effect = "no effect"
	}

	if j.Growth != nil {
		effect = fmt.Sprintf("grows +%g per trigger, currently +%g", j.Growth.Step, j.Growth.Accumulated)
	}

	switch j.Condition.Kind {
	case CondNone:
		return effect
	case CondHandType:
		return fmt.Sprintf("%s if hand is %s", effect, j.Condition.HandType)
	case CondSuit:
		if j.Application == PerCard {
			return fmt.Sprintf("%s per %s card", effect, j.Condition.Suit)
		}
		return fmt.Sprintf("%s if line has a %s card", effect, j.Condition.Suit)
	case CondRank:
		return fmt.Sprintf("%s for ranks %v", effect, j.Condition.Ranks)
	case CondRankParity:
		parity := "even"
		if j.Condition.Parity == Odd {
			parity = "odd"
		}
		return fmt.Sprintf("%s per %s-ranked card", effect, parity)
	case CondFaceCard:
		return fmt.Sprintf("%s per face card", effect)
	case CondFirstFace:
		return fmt.Sprintf("first face card gets ×%g Mult", j.Effect.Value)
	default:
		return effect
	}
}
