// Package shop stocks jokers between rounds. Inventory is drawn from the
// catalog by rarity weight, never offering a joker the player already
// owns or a duplicate within the same stock.
package shop

import (
	rand "math/rand/v2"

	"github.com/lox/pokergrid/internal/joker"
)

// DefaultSlots is how many jokers a stock offers.
const DefaultSlots = 3

// BaseRerollCost is the price of the first reroll in a visit; each
// subsequent reroll costs one more.
const BaseRerollCost = 5

// rarityWeights drive the stocking draw. Legendary jokers never appear
// in the shop.
var rarityWeights = map[joker.Rarity]int{
	joker.Common:    70,
	joker.Uncommon:  25,
	joker.Rare:      5,
	joker.Legendary: 0,
}

// Shop is one between-rounds shop visit.
type Shop struct {
	catalog   []*joker.Joker
	rng       *rand.Rand
	slots     int
	baseCost  int
	inventory []*joker.Joker
	rerolls   int
}

// New creates a shop over catalog. Slot counts below 1 use DefaultSlots
// and base reroll costs below 1 use BaseRerollCost.
func New(catalog []*joker.Joker, rng *rand.Rand, slots, baseCost int) *Shop {
	if slots < 1 {
		slots = DefaultSlots
	}
	if baseCost < 1 {
		baseCost = BaseRerollCost
	}
	return &Shop{catalog: catalog, rng: rng, slots: slots, baseCost: baseCost}
}

// Inventory returns the current stock. Purchased slots are nil.
func (s *Shop) Inventory() []*joker.Joker {
	return s.inventory
}

// Rerolls returns how many rerolls this visit has used.
func (s *Shop) Rerolls() int { return s.rerolls }

// RerollCost returns the price of the next reroll.
func (s *Shop) RerollCost() int {
	return s.baseCost + s.rerolls
}

// Stock fills the inventory with fresh draws, excluding owned joker IDs.
// Call once per visit; use Reroll afterwards.
func (s *Shop) Stock(owned map[string]bool) {
	s.inventory = make([]*joker.Joker, 0, s.slots)
	taken := make(map[string]bool, len(owned)+s.slots)
	for id := range owned {
		taken[id] = true
	}
	for len(s.inventory) < s.slots {
		j := s.draw(taken)
		if j == nil {
			break
		}
		taken[j.ID] = true
		s.inventory = append(s.inventory, j.Clone())
	}
}

// Reroll replaces the unsold stock and bumps the reroll counter. The
// caller is responsible for charging RerollCost first.
func (s *Shop) Reroll(owned map[string]bool) {
	s.rerolls++
	s.Stock(owned)
}

// Buy removes and returns the joker in slot i, or nil if the slot is
// empty or out of range. The caller charges the joker's Cost.
func (s *Shop) Buy(i int) *joker.Joker {
	if i < 0 || i >= len(s.inventory) {
		return nil
	}
	j := s.inventory[i]
	s.inventory[i] = nil
	return j
}

// draw picks one joker by rarity weight, skipping taken IDs. Returns nil
// when no eligible joker remains.
func (s *Shop) draw(taken map[string]bool) *joker.Joker {
	byRarity := make(map[joker.Rarity][]*joker.Joker)
	total := 0
	for _, j := range s.catalog {
		if taken[j.ID] || rarityWeights[j.Rarity] == 0 {
			continue
		}
		if len(byRarity[j.Rarity]) == 0 {
			total += rarityWeights[j.Rarity]
		}
		byRarity[j.Rarity] = append(byRarity[j.Rarity], j)
	}
	if total == 0 {
		return nil
	}

	roll := s.rng.IntN(total)
	for _, rarity := range []joker.Rarity{joker.Common, joker.Uncommon, joker.Rare} {
		pool := byRarity[rarity]
		if len(pool) == 0 {
			continue
		}
		roll -= rarityWeights[rarity]
		if roll < 0 {
			return pool[s.rng.IntN(len(pool))]
		}
	}
	return nil
}
