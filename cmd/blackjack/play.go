package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Decks   int    `help:"Decks in the shoe; overrides config"`
	Delay   string `help:"Pause between dealer draws, e.g. 500ms; overrides config"`
	Balance int    `help:"Starting balance; overrides config"`
	Bet     *int   `help:"Starting bet; overrides config"`
	BetStep int    `default:"5" help:"Bet change per +/- key press"`
	LogFile string `type:"path" help:"Debug log file; overrides config"`
	History string `type:"path" help:"Write the balance history as CSV on exit"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := c.applyOverrides(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger, err := g.newLogger(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}
	rng, _, err := g.rng(logger)
	if err != nil {
		return err
	}

	l := ledger.New(cfg.Bankroll.StartingBalance, cfg.Bet(), logger)
	round := game.NewRound(l,
		game.WithRNG(rng),
		game.WithLogger(logger),
		game.WithDealerDelay(cfg.DealerDelay()),
	)
	if err := round.InitializeDeck(cfg.Table.Decks); err != nil {
		return err
	}

	logger.Info("Starting table",
		"decks", cfg.Table.Decks,
		"delay", cfg.DealerDelay(),
		"balance", l.Balance(),
		"bet", l.BetValue())

	model := tui.New(round, l, tui.Options{
		Decks:          cfg.Table.Decks,
		ReshuffleAtCut: cfg.ReshuffleAtCut(),
		BetStep:        c.BetStep,
	}, logger)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	round.Clear()

	if c.History != "" {
		if err := l.WriteHistory(c.History); err != nil {
			return err
		}
		logger.Info("Wrote balance history", "path", c.History)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Final balance: $%d", l.Balance())))
	return nil
}

func (c *PlayCmd) applyOverrides(cfg *config.Config) error {
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Delay != "" {
		if _, err := time.ParseDuration(c.Delay); err != nil {
			return fmt.Errorf("invalid --delay: %w", err)
		}
		cfg.Table.DealerDelay = c.Delay
	}
	if c.Balance != 0 {
		cfg.Bankroll.StartingBalance = c.Balance
	}
	if c.Bet != nil {
		cfg.SetBet(*c.Bet)
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	return nil
}
