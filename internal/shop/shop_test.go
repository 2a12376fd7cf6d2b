package shop

import (
	"testing"

	"github.com/lox/pokergrid/internal/joker"
	"github.com/lox/pokergrid/internal/randutil"
)

func testCatalog() []*joker.Joker {
	mk := func(id string, rarity joker.Rarity, cost int) *joker.Joker {
		return &joker.Joker{
			ID:        id,
			Name:      id,
			Rarity:    rarity,
			Cost:      cost,
			SellValue: max(1, cost/2),
			Trigger:   joker.TriggerAlways,
			Effect:    joker.Effect{Kind: joker.AddMult, Value: 1},
		}
	}
	return []*joker.Joker{
		mk("c1", joker.Common, 2),
		mk("c2", joker.Common, 3),
		mk("c3", joker.Common, 4),
		mk("c4", joker.Common, 5),
		mk("u1", joker.Uncommon, 6),
		mk("u2", joker.Uncommon, 6),
		mk("r1", joker.Rare, 8),
		mk("l1", joker.Legendary, 20),
	}
}

func TestStockFillsSlotsWithoutDuplicates(t *testing.T) {
	s := New(testCatalog(), randutil.New(1), 3, 0)
	s.Stock(nil)

	inv := s.Inventory()
	if len(inv) != 3 {
		t.Fatalf("len(inventory) = %d, want 3", len(inv))
	}
	seen := make(map[string]bool)
	for _, j := range inv {
		if j == nil {
			t.Fatal("stocked slot is nil")
		}
		if seen[j.ID] {
			t.Errorf("duplicate joker %s in one stock", j.ID)
		}
		seen[j.ID] = true
	}
}

func TestStockExcludesOwnedAndLegendary(t *testing.T) {
	owned := map[string]bool{"c1": true, "c2": true, "c3": true}

	// Many rerolls across seeds: owned and legendary jokers never appear.
	for seed := int64(0); seed < 20; seed++ {
		s := New(testCatalog(), randutil.New(seed), 3, 0)
		s.Stock(owned)
		for _, j := range s.Inventory() {
			if owned[j.ID] {
				t.Fatalf("seed %d: offered owned joker %s", seed, j.ID)
			}
			if j.Rarity == joker.Legendary {
				t.Fatalf("seed %d: offered legendary joker %s", seed, j.ID)
			}
		}
	}
}

func TestStockShortWhenCatalogExhausted(t *testing.T) {
	catalog := testCatalog()[:2] // two commons
	s := New(catalog, randutil.New(1), 3, 0)
	s.Stock(nil)

	if len(s.Inventory()) != 2 {
		t.Errorf("len(inventory) = %d, want 2 with an exhausted catalog", len(s.Inventory()))
	}
}

func TestRerollCostEscalates(t *testing.T) {
	s := New(testCatalog(), randutil.New(1), 3, 0)
	s.Stock(nil)

	if s.RerollCost() != 5 {
		t.Errorf("first reroll cost = %d, want 5", s.RerollCost())
	}
	s.Reroll(nil)
	if s.RerollCost() != 6 {
		t.Errorf("second reroll cost = %d, want 6", s.RerollCost())
	}
	s.Reroll(nil)
	if s.RerollCost() != 7 {
		t.Errorf("third reroll cost = %d, want 7", s.RerollCost())
	}
}

func TestRerollCostUsesConfiguredBase(t *testing.T) {
	s := New(testCatalog(), randutil.New(1), 3, 9)
	s.Stock(nil)

	if s.RerollCost() != 9 {
		t.Errorf("first reroll cost = %d, want configured base 9", s.RerollCost())
	}
	s.Reroll(nil)
	if s.RerollCost() != 10 {
		t.Errorf("second reroll cost = %d, want 10", s.RerollCost())
	}
}

func TestBuyEmptiesSlot(t *testing.T) {
	s := New(testCatalog(), randutil.New(1), 3, 0)
	s.Stock(nil)

	j := s.Buy(1)
	if j == nil {
		t.Fatal("Buy(1) returned nil for a stocked slot")
	}
	if s.Inventory()[1] != nil {
		t.Error("bought slot should be nil")
	}
	if s.Buy(1) != nil {
		t.Error("buying an empty slot should return nil")
	}
	if s.Buy(-1) != nil || s.Buy(9) != nil {
		t.Error("out-of-range buys should return nil")
	}
}

func TestStockedJokersAreClones(t *testing.T) {
	catalog := testCatalog()
	s := New(catalog, randutil.New(1), 3, 0)
	s.Stock(nil)

	j := s.Buy(0)
	j.Growth = &joker.Growth{Step: 1, Accumulated: 5}
	for _, src := range catalog {
		if src.ID == j.ID && src.Growth != nil {
			t.Error("purchase mutated the catalog entry")
		}
	}
}

func TestRarityWeightingFavoursCommons(t *testing.T) {
	counts := make(map[joker.Rarity]int)
	for seed := int64(0); seed < 200; seed++ {
		s := New(testCatalog(), randutil.New(seed), 3, 0)
		s.Stock(nil)
		for _, j := range s.Inventory() {
			counts[j.Rarity]++
		}
	}
	if counts[joker.Common] <= counts[joker.Uncommon] {
		t.Errorf("commons (%d) should outnumber uncommons (%d)", counts[joker.Common], counts[joker.Uncommon])
	}
	if counts[joker.Uncommon] <= counts[joker.Rare] {
		t.Errorf("uncommons (%d) should outnumber rares (%d)", counts[joker.Uncommon], counts[joker.Rare])
	}
	if counts[joker.Legendary] != 0 {
		t.Errorf("legendaries stocked %d times, want 0", counts[joker.Legendary])
	}
}
