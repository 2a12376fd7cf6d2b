// Package hand classifies 1-5 card poker hands for grid scoring.
//
// Grid cells are dealt with replacement, so duplicate cards are legal and
// the classification includes Five of a Kind. Flushes and straights need
// exactly five cards; shorter hands only resolve to kicker-style
// categories (pairs, sets, high card).
package hand

import (
	"sort"

	"github.com/lox/pokergrid/internal/deck"
)

// Type identifies a poker hand category
type Type int

const (
	Invalid Type = iota
	HighCard
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
	FiveOfAKind
)

// String returns a human-readable hand description
func (t Type) String() string {
	switch t {
	case Invalid:
		return "Invalid"
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	case FiveOfAKind:
		return "Five of a Kind"
	default:
		return "Unknown"
	}
}

// ChipTable maps each hand type to its base chip value. The values are
// configuration, not derived; rarer hands under with-replacement dealing
// are worth more.
type ChipTable map[Type]int

// DefaultChips is the standard chip table.
var DefaultChips = ChipTable{
	FiveOfAKind:   160,
	RoyalFlush:    150,
	StraightFlush: 110,
	FourOfAKind:   90,
	FullHouse:     70,
	Flush:         55,
	Straight:      45,
	ThreeOfAKind:  30,
	TwoPair:       20,
	OnePair:       10,
	HighCard:      3,
	Invalid:       0,
}

// Chips returns the base chip value for t, or 0 for unknown types.
func (ct ChipTable) Chips(t Type) int {
	return ct[t]
}

// Hand is the result of classifying a line of cards. Cards are sorted
// rank-descending. Mult starts at 1 and is only ever changed by the joker
// pipeline, never here.
type Hand struct {
	Cards []deck.Card
	Type  Type
	Chips int
	Mult  int
}

// Score returns the line score chips × mult.
func (h Hand) Score() int {
	return h.Chips * h.Mult
}

// Classify evaluates a 1-5 card hand against the given chip table.
// Inputs outside 1-5 cards classify as Invalid with 0 chips rather than
// erroring, so aggregate scores stay well-defined over partial grids.
func Classify(cards []deck.Card, chips ChipTable) Hand {
	if len(cards) < 1 || len(cards) > 5 {
		return Hand{Cards: cards, Type: Invalid, Chips: 0, Mult: 1}
	}

	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	t := classify(sorted)
	return Hand{Cards: sorted, Type: t, Chips: chips.Chips(t), Mult: 1}
}

func classify(cards []deck.Card) Type {
	counts := rankCounts(cards)

	if len(cards) == 5 {
		switch {
		case maxCount(counts) == 5:
			return FiveOfAKind
		case isRoyalFlush(cards):
			return RoyalFlush
		case isFlush(cards) && isStraight(cards):
			return StraightFlush
		case maxCount(counts) == 4:
			return FourOfAKind
		case isFullHouse(counts):
			return FullHouse
		case isFlush(cards):
			return Flush
		case isStraight(cards):
			return Straight
		}
	}

	switch {
	case maxCount(counts) == 4:
		return FourOfAKind
	case maxCount(counts) == 3:
		return ThreeOfAKind
	case pairCount(counts) == 2:
		return TwoPair
	case pairCount(counts) == 1:
		return OnePair
	default:
		return HighCard
	}
}

func rankCounts(cards []deck.Card) [15]int {
	var counts [15]int
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func maxCount(counts [15]int) int {
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return max
}

func pairCount(counts [15]int) int {
	pairs := 0
	for _, n := range counts {
		if n == 2 {
			pairs++
		}
	}
	return pairs
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects 5 cards. It accepts the normal ascending run and the
// wheel (A,2,3,4,5).
func isStraight(cards []deck.Card) bool {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Ints(values)

	run := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[0]+i {
			run = false
			break
		}
	}
	if run {
		return true
	}

	// Wheel: A,2,3,4,5
	return values[0] == 2 && values[1] == 3 && values[2] == 4 &&
		values[3] == 5 && values[4] == int(deck.Ace)
}

func isRoyalFlush(cards []deck.Card) bool {
	if !isFlush(cards) {
		return false
	}
	var ranks [15]bool
	for _, c := range cards {
		ranks[c.Rank] = true
	}
	return ranks[deck.Ten] && ranks[deck.Jack] && ranks[deck.Queen] &&
		ranks[deck.King] && ranks[deck.Ace]
}

func isFullHouse(counts [15]int) bool {
	hasTrips, hasPair := false, false
	for _, n := range counts {
		switch n {
		case 3:
			hasTrips = true
		case 2:
			hasPair = true
		}
	}
	return hasTrips && hasPair
}
