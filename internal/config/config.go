// Package config loads game configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete game configuration.
type Config struct {
	Grid      GridSettings      `hcl:"grid,block"`
	Shop      ShopSettings      `hcl:"shop,block"`
	Evaluator EvaluatorSettings `hcl:"evaluator,block"`
	Session   SessionSettings   `hcl:"session,block"`
}

// fileConfig is the on-disk shape; every block is optional.
type fileConfig struct {
	Grid      *GridSettings      `hcl:"grid,block"`
	Shop      *ShopSettings      `hcl:"shop,block"`
	Evaluator *EvaluatorSettings `hcl:"evaluator,block"`
	Session   *SessionSettings   `hcl:"session,block"`
}

// GridSettings shape the playing grid and scoring.
type GridSettings struct {
	Rows       int `hcl:"rows,optional"`
	Cols       int `hcl:"cols,optional"`
	TopK       int `hcl:"top_k,optional"`
	MaxFreezes int `hcl:"max_freezes,optional"`
}

// ShopSettings control the between-rounds shop.
type ShopSettings struct {
	Slots          int `hcl:"slots,optional"`
	BaseRerollCost int `hcl:"base_reroll_cost,optional"`
	JokerSlots     int `hcl:"joker_slots,optional"`
}

// EvaluatorSettings tune the Monte Carlo estimator.
type EvaluatorSettings struct {
	Samples int `hcl:"samples,optional"`
	Workers int `hcl:"workers,optional"`
}

// SessionSettings control the round loop.
type SessionSettings struct {
	StartingMoney int   `hcl:"starting_money,optional"`
	Quotas        []int `hcl:"quotas,optional"`
}

// Default returns the standard game configuration.
func Default() *Config {
	return &Config{
		Grid: GridSettings{
			Rows:       5,
			Cols:       5,
			TopK:       3,
			MaxFreezes: 2,
		},
		Shop: ShopSettings{
			Slots:          3,
			BaseRerollCost: 5,
			JokerSlots:     5,
		},
		Evaluator: EvaluatorSettings{
			Samples: 200,
			Workers: 1,
		},
		Session: SessionSettings{
			StartingMoney: 10,
			Quotas:        []int{300, 600, 920, 1260, 1605, 1960, 2330, 2710},
		},
	}
}

// Load reads configuration from an HCL file, overlaying defaults for
// anything the file leaves out. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()

	if raw.Grid != nil {
		overlayInt(&config.Grid.Rows, raw.Grid.Rows)
		overlayInt(&config.Grid.Cols, raw.Grid.Cols)
		overlayInt(&config.Grid.TopK, raw.Grid.TopK)
		overlayInt(&config.Grid.MaxFreezes, raw.Grid.MaxFreezes)
	}
	if raw.Shop != nil {
		overlayInt(&config.Shop.Slots, raw.Shop.Slots)
		overlayInt(&config.Shop.BaseRerollCost, raw.Shop.BaseRerollCost)
		overlayInt(&config.Shop.JokerSlots, raw.Shop.JokerSlots)
	}
	if raw.Evaluator != nil {
		overlayInt(&config.Evaluator.Samples, raw.Evaluator.Samples)
		overlayInt(&config.Evaluator.Workers, raw.Evaluator.Workers)
	}
	if raw.Session != nil {
		overlayInt(&config.Session.StartingMoney, raw.Session.StartingMoney)
		if len(raw.Session.Quotas) > 0 {
			config.Session.Quotas = raw.Session.Quotas
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overlayInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate rejects configurations the game cannot run with.
func (c *Config) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Grid.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.Grid.TopK)
	}
	if c.Grid.MaxFreezes < 0 {
		return fmt.Errorf("max_freezes cannot be negative, got %d", c.Grid.MaxFreezes)
	}
	if c.Evaluator.Samples < 0 {
		return fmt.Errorf("evaluator samples cannot be negative, got %d", c.Evaluator.Samples)
	}
	for i, q := range c.Session.Quotas {
		if q <= 0 {
			return fmt.Errorf("quota %d must be positive, got %d", i, q)
		}
		if i > 0 && q <= c.Session.Quotas[i-1] {
			return fmt.Errorf("quotas must increase: quota %d (%d) <= quota %d (%d)", i, q, i-1, c.Session.Quotas[i-1])
		}
	}
	return nil
}
