package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
)

// Option configures a Round during creation.
type Option func(*roundConfig)

// roundConfig holds all configuration for creating a round.
type roundConfig struct {
	rng    *rand.Rand
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger
	shoe   *blackjack.Shoe
	bus    EventBus
	ids    *roundid.Generator
}

// WithRNG sets the random source used to build shoes.
// Default is a generator seeded from crypto/rand.
func WithRNG(rng *rand.Rand) Option {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithClock sets the clock that paces the dealer. Tests pass quartz.NewMock.
func WithClock(clock quartz.Clock) Option {
	return func(c *roundConfig) {
		c.clock = clock
	}
}

// WithDealerDelay sets the pause between dealer draws. Zero (the default)
// plays the dealer out synchronously inside the action that ended the
// player's turn.
func WithDealerDelay(d time.Duration) Option {
	return func(c *roundConfig) {
		c.delay = d
	}
}

// WithLogger sets the logger. Default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithShoe starts the round with a pre-built shoe instead of requiring
// InitializeDeck first.
func WithShoe(shoe *blackjack.Shoe) Option {
	return func(c *roundConfig) {
		c.shoe = shoe
	}
}

// WithEventBus sets the bus events are published on.
func WithEventBus(bus EventBus) Option {
	return func(c *roundConfig) {
		c.bus = bus
	}
}

// WithIDGenerator sets the generator for round IDs.
func WithIDGenerator(g *roundid.Generator) Option {
	return func(c *roundConfig) {
		c.ids = g
	}
}

func newRoundConfig(opts []Option) *roundConfig {
	cfg := &roundConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rng == nil {
		seed, err := randutil.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		cfg.rng = randutil.New(seed)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.ids == nil {
		cfg.ids = roundid.NewGenerator(nil)
	}
	return cfg
}
