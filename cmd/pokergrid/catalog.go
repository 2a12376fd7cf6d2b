package main

import (
	"fmt"
	"sort"

	"github.com/lox/pokergrid/internal/agent"
	"github.com/lox/pokergrid/internal/joker"
)

// CatalogCmd lists the joker catalog with the smart agent's value score
// for each entry.
type CatalogCmd struct {
	File   string `help:"Load catalog from a CSV file instead of the embedded one" type:"path"`
	ByName bool   `help:"Sort by name instead of value score"`
}

func (c *CatalogCmd) Run(cli *CLI) error {
	var (
		jokers []*joker.Joker
		err    error
	)
	if c.File != "" {
		jokers, err = joker.LoadCatalogFile(c.File)
		if err != nil {
			return err
		}
	} else {
		jokers = joker.DefaultCatalog()
	}

	type scored struct {
		j     *joker.Joker
		value float64
	}
	rows := make([]scored, 0, len(jokers))
	for _, j := range jokers {
		rows = append(rows, scored{j: j, value: agent.ValueScore(j, nil)})
	}

	if c.ByName {
		sort.Slice(rows, func(i, k int) bool { return rows[i].j.Name < rows[k].j.Name })
	} else {
		sort.Slice(rows, func(i, k int) bool { return rows[i].value > rows[k].value })
	}

	fmt.Printf("%-6s %-18s %-10s %5s %7s  %s\n", "ID", "NAME", "RARITY", "COST", "VALUE", "EFFECT")
	for _, row := range rows {
		fmt.Printf("%-6s %-18s %-10s %5d %7.1f  %s\n",
			row.j.ID, row.j.Name, row.j.Rarity, row.j.Cost, row.value, row.j.Describe())
	}
	return nil
}
