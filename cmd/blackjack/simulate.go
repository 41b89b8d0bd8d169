package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays rounds headless and reports statistics
type SimulateCmd struct {
	Rounds   int    `short:"n" default:"10000" help:"Rounds to play"`
	Workers  int    `default:"0" help:"Parallel workers (0 = GOMAXPROCS)"`
	Strategy string `short:"s" enum:"stand,mimic,basic" default:"basic" help:"Player strategy (stand, mimic, basic)"`
	Decks    int    `help:"Decks in the shoe; overrides config"`
	Bet      *int   `help:"Bet per hand; overrides config"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Bet != nil {
		cfg.SetBet(*c.Bet)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := g.newLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	seed, err := g.seed(logger)
	if err != nil {
		return err
	}

	sim, err := simulator.New(simulator.Config{
		Rounds:         c.Rounds,
		Workers:        c.Workers,
		Decks:          cfg.Table.Decks,
		Bet:            cfg.Bet(),
		Strategy:       c.Strategy,
		Seed:           seed,
		ReshuffleAtCut: cfg.ReshuffleAtCut(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Blackjack simulation, seed %d", seed)))
	simulator.WriteSummary(os.Stdout, res)
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
