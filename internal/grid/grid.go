// Package grid holds the card grid a round is played on. Cells are dealt
// with replacement from a full deck; frozen cells survive redeals.
package grid

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/pokergrid/internal/deck"
)

// CellRef addresses one grid cell.
type CellRef struct {
	Row int
	Col int
}

// String returns e.g. "(2,4)".
func (r CellRef) String() string {
	return fmt.Sprintf("(%d,%d)", r.Row, r.Col)
}

// Cell is one grid position. Filled distinguishes an empty cell from a
// dealt one; Frozen cells keep their card through redeals.
type Cell struct {
	Card   deck.Card
	Filled bool
	Frozen bool
}

// Grid is a fixed rows × cols matrix of cells.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

// New creates an empty grid.
func New(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether ref addresses a cell on this grid.
func (g *Grid) InBounds(ref CellRef) bool {
	return ref.Row >= 0 && ref.Row < g.rows && ref.Col >= 0 && ref.Col < g.cols
}

// At returns the cell at (r, c).
func (g *Grid) At(r, c int) Cell {
	return g.cells[r][c]
}

// Card returns the card at (r, c) and whether the cell is filled.
func (g *Grid) Card(r, c int) (deck.Card, bool) {
	cell := g.cells[r][c]
	return cell.Card, cell.Filled
}

// SetCard places a card at (r, c).
func (g *Grid) SetCard(r, c int, card deck.Card) {
	g.cells[r][c].Card = card
	g.cells[r][c].Filled = true
}

// Freeze marks the cell at ref frozen. Returns false for out-of-bounds or
// unfilled cells.
func (g *Grid) Freeze(ref CellRef) bool {
	if !g.InBounds(ref) || !g.cells[ref.Row][ref.Col].Filled {
		return false
	}
	g.cells[ref.Row][ref.Col].Frozen = true
	return true
}

// Unfreeze clears the frozen flag at ref.
func (g *Grid) Unfreeze(ref CellRef) {
	if g.InBounds(ref) {
		g.cells[ref.Row][ref.Col].Frozen = false
	}
}

// ClearFreezes unfreezes every cell.
func (g *Grid) ClearFreezes() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].Frozen = false
		}
	}
}

// FrozenCells returns the refs of all frozen cells in row-major order.
func (g *Grid) FrozenCells() []CellRef {
	var out []CellRef
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Frozen {
				out = append(out, CellRef{Row: r, Col: c})
			}
		}
	}
	return out
}

// FrozenCount returns how many cells are frozen.
func (g *Grid) FrozenCount() int {
	return len(g.FrozenCells())
}

// Deal fills every non-frozen cell with an independent uniform draw from
// a full 52-card deck. Duplicate cards across cells are expected.
func (g *Grid) Deal(rng *rand.Rand) {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Frozen {
				continue
			}
			g.cells[r][c].Card = deck.Sample(rng)
			g.cells[r][c].Filled = true
		}
	}
}

// Complete reports whether every cell is filled.
func (g *Grid) Complete() bool {
	for r := range g.cells {
		for c := range g.cells[r] {
			if !g.cells[r][c].Filled {
				return false
			}
		}
	}
	return true
}

// Row returns the cards of row r in column order, and whether the row is
// fully populated. Partial rows are not scoreable.
func (g *Grid) Row(r int) ([]deck.Card, bool) {
	cards := make([]deck.Card, 0, g.cols)
	for c := 0; c < g.cols; c++ {
		cell := g.cells[r][c]
		if !cell.Filled {
			return nil, false
		}
		cards = append(cards, cell.Card)
	}
	return cards, true
}

// Col returns the cards of column c in row order, and whether the column
// is fully populated.
func (g *Grid) Col(c int) ([]deck.Card, bool) {
	cards := make([]deck.Card, 0, g.rows)
	for r := 0; r < g.rows; r++ {
		cell := g.cells[r][c]
		if !cell.Filled {
			return nil, false
		}
		cards = append(cards, cell.Card)
	}
	return cards, true
}

// Cards returns every filled cell with its position, row-major.
func (g *Grid) Cards() []PlacedCard {
	var out []PlacedCard
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Filled {
				out = append(out, PlacedCard{Card: g.cells[r][c].Card, Ref: CellRef{Row: r, Col: c}})
			}
		}
	}
	return out
}

// PlacedCard pairs a card with its grid position.
type PlacedCard struct {
	Card deck.Card
	Ref  CellRef
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := New(g.rows, g.cols)
	for r := range g.cells {
		copy(out.cells[r], g.cells[r])
	}
	return out
}
