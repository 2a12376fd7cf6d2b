package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
	"github.com/lox/pokergrid/internal/randutil"
	"github.com/lox/pokergrid/internal/score"
)

// ScoreCmd deals one grid and prints the full scoring breakdown.
type ScoreCmd struct {
	Seed   int64    `default:"0" help:"RNG seed (0 for random)"`
	Jokers []string `help:"Joker IDs from the catalog to apply (e.g. j_001)"`
}

func (c *ScoreCmd) Run(cli *CLI) error {
	cfg, err := loadGame(cli)
	if err != nil {
		return err
	}

	pipeline := joker.NewPipeline(cfg.Shop.JokerSlots)
	if len(c.Jokers) > 0 {
		catalog := joker.DefaultCatalog()
		byID := make(map[string]*joker.Joker, len(catalog))
		for _, j := range catalog {
			byID[j.ID] = j
		}
		for _, id := range c.Jokers {
			j, ok := byID[id]
			if !ok {
				return fmt.Errorf("unknown joker id %q", id)
			}
			if !pipeline.Add(j.Clone()) {
				return fmt.Errorf("too many jokers (limit %d)", pipeline.MaxSlots())
			}
		}
	}

	seed := resolveSeed(c.Seed)
	g := grid.New(cfg.Grid.Rows, cfg.Grid.Cols)
	g.Deal(randutil.New(seed))

	out := termenv.DefaultOutput()
	red := out.Color("#FF6B6B")

	fmt.Printf("seed %d\n\n", seed)
	for r := 0; r < g.Rows(); r++ {
		cells := make([]string, 0, g.Cols())
		for col := 0; col < g.Cols(); col++ {
			card, _ := g.Card(r, col)
			s := fmt.Sprintf("%3s", card)
			if card.Suit == deck.Hearts || card.Suit == deck.Diamonds {
				s = out.String(s).Foreground(red).String()
			}
			cells = append(cells, s)
		}
		fmt.Println(strings.Join(cells, " "))
	}
	fmt.Println()

	for _, j := range pipeline.Jokers() {
		fmt.Printf("with %s\n", j)
	}
	if pipeline.Count() > 0 {
		fmt.Println()
	}

	res := score.NewScorer(nil, cfg.Grid.TopK).ScoreGrid(g, pipeline)
	for i, line := range res.Lines {
		marker := "   "
		if i < len(res.Top) {
			marker = fmt.Sprintf("#%-2d", line.Rank)
		}
		fmt.Printf("%s %-6s %-15s %5d × %-4d = %d\n",
			marker, line.Label(), line.Hand.Type, line.Chips, line.Mult, line.Score)
	}
	fmt.Printf("\ntotal (top %d): %d\n", cfg.Grid.TopK, res.Total)
	return nil
}
