package joker

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/hand"
)

//go:embed jokers.csv
var defaultCatalogCSV string

// DefaultCatalog returns the embedded joker catalog.
func DefaultCatalog() []*Joker {
	jokers, err := LoadCatalog(strings.NewReader(defaultCatalogCSV))
	if err != nil {
		// The embedded catalog is validated by tests; a decode failure
		// here is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded joker catalog: %v", err))
	}
	return jokers
}

// LoadCatalogFile loads a joker catalog from a CSV file on disk.
func LoadCatalogFile(path string) ([]*Joker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open joker catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes a joker catalog from CSV. Expected columns:
//
//	id,name,effect_type,trigger,condition_type,condition_value,
//	bonus_type,bonus_value,per_card,grow_per,rarity,cost,notes
//
// String tags are resolved into the closed Condition/Effect variants here,
// once, rather than re-parsed on every scoring call. Unknown trigger and
// condition tags load as never-firing jokers; malformed bonus values are
// load-time errors.
func LoadCatalog(r io.Reader) ([]*Joker, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read joker catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"id", "name", "trigger", "bonus_type", "bonus_value"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("joker catalog missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var jokers []*Joker
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read joker catalog line %d: %w", line, err)
		}
		if field(row, "id") == "" {
			continue
		}

		j, err := decodeJoker(
			field(row, "id"), field(row, "name"),
			field(row, "effect_type"), field(row, "trigger"),
			field(row, "condition_type"), field(row, "condition_value"),
			field(row, "bonus_type"), field(row, "bonus_value"),
			field(row, "per_card"), field(row, "rarity"),
			field(row, "cost"), field(row, "notes"),
		)
		if err != nil {
			return nil, fmt.Errorf("joker catalog line %d: %w", line, err)
		}
		jokers = append(jokers, j)
	}
	return jokers, nil
}

// chipsAndMultRE matches the packed "+c and +m" encoding, e.g. "20c4m".
// Only this shape and plain floats are accepted; the source format for
// more exotic suffix encodings is not enumerated, so anything else is
// rejected rather than guessed at.
var chipsAndMultRE = regexp.MustCompile(`^(\d+)c(\d+)m$`)

func decodeJoker(id, name, effectType, trigger, condType, condValue,
	bonusType, bonusValue, perCard, rarity, cost, notes string) (*Joker, error) {

	j := &Joker{
		ID:     id,
		Name:   name,
		Rarity: Rarity(rarity),
		Notes:  notes,
	}

	if cost != "" {
		n, err := strconv.Atoi(cost)
		if err != nil {
			return nil, fmt.Errorf("joker %s: invalid cost %q", id, cost)
		}
		j.Cost = n
	}
	j.SellValue = max(1, j.Cost/2)

	switch trigger {
	case "always":
		j.Trigger = TriggerAlways
	case "on_scored":
		j.Trigger = TriggerOnScored
	default:
		// on_held, on_discard and anything newer: loads, never fires.
		j.Trigger = TriggerNever
	}

	cond, err := decodeCondition(condType, condValue)
	if err != nil {
		return nil, fmt.Errorf("joker %s: %w", id, err)
	}
	j.Condition = cond

	effect, err := decodeEffect(bonusType, bonusValue)
	if err != nil {
		return nil, fmt.Errorf("joker %s: %w", id, err)
	}
	j.Effect = effect

	switch perCard {
	case "true", "True", "1":
		j.Application = PerCard
	case "first_only":
		j.Application = FirstOnly
	default:
		j.Application = PerLine
	}

	if effectType == "growing" {
		j.Growth = &Growth{Step: effect.Value}
	}

	return j, nil
}

func decodeCondition(condType, condValue string) (Condition, error) {
	switch condType {
	case "":
		return Condition{Kind: CondNone}, nil
	case "hand_type":
		t, ok := parseHandType(condValue)
		if !ok {
			return Condition{}, fmt.Errorf("unknown hand type %q", condValue)
		}
		return Condition{Kind: CondHandType, HandType: t}, nil
	case "suit":
		s, ok := parseSuit(condValue)
		if !ok {
			return Condition{}, fmt.Errorf("unknown suit %q", condValue)
		}
		return Condition{Kind: CondSuit, Suit: s}, nil
	case "rank":
		var ranks []deck.Rank
		for _, part := range strings.Split(condValue, "|") {
			c, err := deck.ParseCard(part + "s")
			if err != nil {
				return Condition{}, fmt.Errorf("unknown rank %q", part)
			}
			ranks = append(ranks, c.Rank)
		}
		return Condition{Kind: CondRank, Ranks: ranks}, nil
	case "rank_parity":
		switch condValue {
		case "even":
			return Condition{Kind: CondRankParity, Parity: Even}, nil
		case "odd":
			return Condition{Kind: CondRankParity, Parity: Odd}, nil
		}
		return Condition{}, fmt.Errorf("unknown parity %q", condValue)
	case "card_type":
		if condValue == "face" {
			return Condition{Kind: CondFaceCard}, nil
		}
		return Condition{Kind: CondUnknown}, nil
	case "card_position":
		if condValue == "first_face" {
			return Condition{Kind: CondFirstFace}, nil
		}
		return Condition{Kind: CondUnknown}, nil
	default:
		return Condition{Kind: CondUnknown}, nil
	}
}

func decodeEffect(bonusType, bonusValue string) (Effect, error) {
	switch bonusType {
	case "+m", "+c", "Xm":
		v, err := strconv.ParseFloat(bonusValue, 64)
		if err != nil {
			return Effect{}, fmt.Errorf("invalid bonus value %q for %s", bonusValue, bonusType)
		}
		kind := AddMult
		switch bonusType {
		case "+c":
			kind = AddChips
		case "Xm":
			kind = MulMult
		}
		return Effect{Kind: kind, Value: v}, nil
	case "++":
		m := chipsAndMultRE.FindStringSubmatch(bonusValue)
		if m == nil {
			return Effect{}, fmt.Errorf("invalid chips-and-mult value %q (want e.g. \"20c4m\")", bonusValue)
		}
		chips, _ := strconv.Atoi(m[1])
		mult, _ := strconv.Atoi(m[2])
		return Effect{Kind: AddChipsAndMult, Chips: chips, Mult: mult}, nil
	default:
		return Effect{Kind: EffectUnknown}, nil
	}
}

func parseSuit(s string) (deck.Suit, bool) {
	switch s {
	case "Spade", "Spades", "S":
		return deck.Spades, true
	case "Heart", "Hearts", "H":
		return deck.Hearts, true
	case "Diamond", "Diamonds", "D":
		return deck.Diamonds, true
	case "Club", "Clubs", "C":
		return deck.Clubs, true
	}
	return 0, false
}

func parseHandType(s string) (hand.Type, bool) {
	switch s {
	case "High Card":
		return hand.HighCard, true
	case "Pair", "One Pair":
		return hand.OnePair, true
	case "Two Pair":
		return hand.TwoPair, true
	case "Three of a Kind":
		return hand.ThreeOfAKind, true
	case "Straight":
		return hand.Straight, true
	case "Flush":
		return hand.Flush, true
	case "Full House":
		return hand.FullHouse, true
	case "Four of a Kind":
		return hand.FourOfAKind, true
	case "Straight Flush":
		return hand.StraightFlush, true
	case "Royal Flush":
		return hand.RoyalFlush, true
	case "Five of a Kind":
		return hand.FiveOfAKind, true
	}
	return hand.Invalid, false
}
