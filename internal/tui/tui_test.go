package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/hand"
	"github.com/lox/pokergrid/internal/score"
	"github.com/lox/pokergrid/internal/session"
)

func TestModelTracksRoundLifecycle(t *testing.T) {
	m := NewModel("normal")

	model, _ := m.Update(RoundStartedMsg{Round: 1, Quota: 300})
	m = model.(*Model)

	g := grid.New(2, 2)
	g.SetCard(0, 0, deck.MustParseCard("Ah"))
	g.SetCard(0, 1, deck.MustParseCard("Ks"))
	g.SetCard(1, 0, deck.MustParseCard("2d"))
	g.SetCard(1, 1, deck.MustParseCard("7c"))

	model, _ = m.Update(GridDealtMsg{Grid: g, Frozen: []grid.CellRef{{Row: 0, Col: 0}}})
	m = model.(*Model)

	view := m.View()
	if !strings.Contains(view, "pokergrid (normal agent)") {
		t.Errorf("view missing title bar:\n%s", view)
	}
	if !strings.Contains(view, "Round 1") || !strings.Contains(view, "quota 300") {
		t.Errorf("view missing round header:\n%s", view)
	}
	if !strings.Contains(view, "A♥") {
		t.Errorf("view missing dealt card:\n%s", view)
	}
}

func TestModelShowsScoredLines(t *testing.T) {
	m := NewModel("smart")

	result := session.RoundResult{
		Round: 2,
		Quota: 600,
		Beat:  true,
		Result: score.Result{
			Top: []score.Line{
				{Kind: score.RowLine, Index: 0, Rank: 1, Chips: 90, Mult: 2, Score: 180,
					Hand: hand.Hand{Type: hand.FourOfAKind}},
			},
			Total: 180,
		},
	}
	model, _ := m.Update(RoundScoredMsg{Result: result})
	m = model.(*Model)

	view := m.View()
	if !strings.Contains(view, "Four of a Kind") {
		t.Errorf("view missing hand type:\n%s", view)
	}
	if !strings.Contains(view, "cleared") {
		t.Errorf("commentary missing verdict:\n%s", view)
	}
}

func TestModelQuitsOnKey(t *testing.T) {
	m := NewModel("normal")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = model.(*Model)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("expected quit message")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestCommentaryIsBounded(t *testing.T) {
	m := NewModel("normal")
	for i := 0; i < 50; i++ {
		model, _ := m.Update(RoundStartedMsg{Round: i + 1, Quota: 10})
		m = model.(*Model)
	}
	if len(m.commentary) > 8 {
		t.Errorf("commentary grew to %d lines", len(m.commentary))
	}
}
