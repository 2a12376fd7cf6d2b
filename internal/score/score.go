// Package score evaluates a grid's poker lines and selects the top-K
// scoring lines for a deal.
package score

import (
	"fmt"
	"sort"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/hand"
	"github.com/lox/pokergrid/internal/joker"
)

// LineKind distinguishes row lines from column lines.
type LineKind int

const (
	RowLine LineKind = iota
	ColLine
)

func (k LineKind) String() string {
	if k == RowLine {
		return "row"
	}
	return "col"
}

// Line is one scored grid line.
type Line struct {
	Kind  LineKind
	Index int
	Hand  hand.Hand
	Chips int
	Mult  int
	Score int

	// Rank is the 1-based payout rank after sorting. Lines that tie an
	// earlier line's score share its rank.
	Rank int
}

// Label returns e.g. "row 2" or "col 0".
func (l Line) Label() string {
	return fmt.Sprintf("%s %d", l.Kind, l.Index)
}

// Result is the outcome of scoring one grid deal.
type Result struct {
	// Lines holds every complete line, sorted by score descending with
	// rows before columns and lower indexes first on ties.
	Lines []Line

	// Top holds the first topK entries of Lines.
	Top []Line

	// Total is the sum of the Top line scores.
	Total int
}

// Scorer scores grids with a fixed chip table and top-K policy.
type Scorer struct {
	chips hand.ChipTable
	topK  int
}

// DefaultTopK is how many lines pay out per deal.
const DefaultTopK = 3

// NewScorer creates a scorer. A nil chip table uses the defaults; topK
// values below 1 fall back to DefaultTopK.
func NewScorer(chips hand.ChipTable, topK int) *Scorer {
	if chips == nil {
		chips = hand.DefaultChips
	}
	if topK < 1 {
		topK = DefaultTopK
	}
	return &Scorer{chips: chips, topK: topK}
}

// TopK returns the scorer's payout count.
func (s *Scorer) TopK() int { return s.topK }

// ScoreGrid classifies every complete row and column of g, runs each
// through the joker pipeline, and returns all lines ranked with the
// top-K total. Incomplete lines are skipped. A nil pipeline scores base
// hands only.
func (s *Scorer) ScoreGrid(g *grid.Grid, pipeline *joker.Pipeline) Result {
	lines := make([]Line, 0, g.Rows()+g.Cols())

	for r := 0; r < g.Rows(); r++ {
		if cards, ok := g.Row(r); ok {
			lines = append(lines, s.scoreLine(RowLine, r, cards, pipeline))
		}
	}
	for c := 0; c < g.Cols(); c++ {
		if cards, ok := g.Col(c); ok {
			lines = append(lines, s.scoreLine(ColLine, c, cards, pipeline))
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Score != lines[j].Score {
			return lines[i].Score > lines[j].Score
		}
		if lines[i].Kind != lines[j].Kind {
			return lines[i].Kind == RowLine
		}
		return lines[i].Index < lines[j].Index
	})

	// Ties share the rank of the first line they match.
	for i := range lines {
		if i > 0 && lines[i].Score == lines[i-1].Score {
			lines[i].Rank = lines[i-1].Rank
		} else {
			lines[i].Rank = i + 1
		}
	}

	res := Result{Lines: lines}
	k := min(s.topK, len(lines))
	res.Top = lines[:k]
	for _, l := range res.Top {
		res.Total += l.Score
	}
	return res
}

func (s *Scorer) scoreLine(kind LineKind, index int, cards []deck.Card, pipeline *joker.Pipeline) Line {
	h := hand.Classify(cards, s.chips)
	chips, mult := h.Chips, h.Mult
	if pipeline != nil {
		chips, mult = pipeline.Apply(h, cards, chips, mult)
	}
	return Line{
		Kind:  kind,
		Index: index,
		Hand:  h,
		Chips: chips,
		Mult:  mult,
		Score: chips * mult,
	}
}
