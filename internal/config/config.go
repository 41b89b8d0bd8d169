package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultDecks           = 6
	DefaultDealerDelay     = "300ms"
	DefaultStartingBalance = 1000
	DefaultBet             = 10
	DefaultLogLevel        = "info"
	DefaultLogFile         = "blackjack.log"

	maxDecks = 8
)

// Config represents the complete blackjack configuration
type Config struct {
	Table    *TableSettings    `hcl:"table,block"`
	Bankroll *BankrollSettings `hcl:"bankroll,block"`
	Log      *LogSettings      `hcl:"log,block"`
}

// TableSettings contains shoe and dealer settings
type TableSettings struct {
	Decks          int    `hcl:"decks,optional"`
	DealerDelay    string `hcl:"dealer_delay,optional"`
	ReshuffleAtCut *bool  `hcl:"reshuffle_at_cut,optional"`
}

// BankrollSettings contains the ledger's starting values
type BankrollSettings struct {
	StartingBalance int  `hcl:"starting_balance,optional"`
	Bet             *int `hcl:"bet,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns default configuration
func Default() *Config {
	reshuffle := true
	bet := DefaultBet
	return &Config{
		Table: &TableSettings{
			Decks:          DefaultDecks,
			DealerDelay:    DefaultDealerDelay,
			ReshuffleAtCut: &reshuffle,
		},
		Bankroll: &BankrollSettings{
			StartingBalance: DefaultStartingBalance,
			Bet:             &bet,
		},
		Log: &LogSettings{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; an empty filename does too.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	def := Default()
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Bankroll == nil {
		c.Bankroll = &BankrollSettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}

	if c.Table.Decks == 0 {
		c.Table.Decks = def.Table.Decks
	}
	if c.Table.DealerDelay == "" {
		c.Table.DealerDelay = def.Table.DealerDelay
	}
	if c.Table.ReshuffleAtCut == nil {
		c.Table.ReshuffleAtCut = def.Table.ReshuffleAtCut
	}
	if c.Bankroll.StartingBalance == 0 {
		c.Bankroll.StartingBalance = def.Bankroll.StartingBalance
	}
	// a bet of zero is allowed, only a missing one takes the default
	if c.Bankroll.Bet == nil {
		c.Bankroll.Bet = def.Bankroll.Bet
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 || c.Table.Decks > maxDecks {
		return fmt.Errorf("%w: decks must be between 1 and %d, got %d", ErrInvalidConfig, maxDecks, c.Table.Decks)
	}
	delay, err := time.ParseDuration(c.Table.DealerDelay)
	if err != nil {
		return fmt.Errorf("%w: dealer_delay: %v", ErrInvalidConfig, err)
	}
	if delay < 0 {
		return fmt.Errorf("%w: dealer_delay must not be negative", ErrInvalidConfig)
	}
	if c.Bankroll.Bet != nil && *c.Bankroll.Bet < 0 {
		return fmt.Errorf("%w: bet must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DealerDelay returns the parsed dealer delay, or zero if it does not parse
func (c *Config) DealerDelay() time.Duration {
	d, err := time.ParseDuration(c.Table.DealerDelay)
	if err != nil {
		return 0
	}
	return d
}

// ReshuffleAtCut reports whether hosts reshuffle once the cut is passed
func (c *Config) ReshuffleAtCut() bool {
	return c.Table.ReshuffleAtCut == nil || *c.Table.ReshuffleAtCut
}

// Bet returns the configured bet
func (c *Config) Bet() int {
	if c.Bankroll.Bet == nil {
		return DefaultBet
	}
	return *c.Bankroll.Bet
}

// SetBet overrides the configured bet
func (c *Config) SetBet(bet int) {
	c.Bankroll.Bet = &bet
}

// ParseLevel maps a level name to a log.Level
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
