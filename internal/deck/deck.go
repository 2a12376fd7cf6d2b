package deck

import rand "math/rand/v2"

// Sample returns a uniformly random card, drawn with replacement.
// Grid deals use this exclusively: every cell is an independent draw
// from a full 52-card deck, so duplicate cards across cells are legal and
// five copies of the same card can appear in one line.
func Sample(rng *rand.Rand) Card {
	suit := Suit(rng.IntN(4))
	rank := Rank(rng.IntN(13)) + Two
	return NewCard(suit, rank)
}
