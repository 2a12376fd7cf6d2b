package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `help:"Show version"`
	Config  string           `short:"c" help:"Path to HCL config file" type:"path"`
	Verbose bool             `short:"v" help:"Verbose logging"`

	Play     PlayCmd     `cmd:"" help:"Watch an agent play a session in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run many sessions per agent and report score statistics"`
	Score    ScoreCmd    `cmd:"" help:"Deal one grid and print the scoring breakdown"`
	Catalog  CatalogCmd  `cmd:"" help:"List the joker catalog with value scores"`
}

func (c *CLI) logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokergrid"),
		kong.Description("Poker-grid scoring engine with joker modifiers and decision agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
