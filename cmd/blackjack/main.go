package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" type:"path" default:"blackjack.hcl" help:"HCL config file (defaults are used if it does not exist)"`
	Seed     *int64 `help:"Deterministic RNG seed (optional)"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides config"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds with a fixed strategy"`
	Shoe     ShoeCmd          `cmd:"" help:"Print a shuffled shoe and its cut position"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against a dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies the global overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at the configured level
func (g *Globals) newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, nil
}

// seed returns the user's seed or a fresh random one
func (g *Globals) seed(logger *log.Logger) (int64, error) {
	if g.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *g.Seed)
		return *g.Seed, nil
	}
	seed, err := randutil.NewSeed()
	if err != nil {
		return 0, err
	}
	logger.Info("Using random seed", "seed", seed)
	return seed, nil
}

func (g *Globals) rng(logger *log.Logger) (*rand.Rand, int64, error) {
	seed, err := g.seed(logger)
	if err != nil {
		return nil, 0, err
	}
	return randutil.New(seed), seed, nil
}
