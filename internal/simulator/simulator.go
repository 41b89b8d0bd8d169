package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// minShoeCards is the fewest cards a shoe may hold before a round is dealt
// from it; below this the shoe is rebuilt.
const minShoeCards = 15

// Config holds configuration for running simulations
type Config struct {
	Rounds         int
	Workers        int
	Decks          int
	Bet            int
	Strategy       string
	Seed           int64
	ReshuffleAtCut bool
	Logger         *log.Logger
}

// Result is the outcome of a simulation run
type Result struct {
	Strategy string
	Stats    *statistics.Statistics

	// Abandoned counts rounds dropped because the shoe ran out mid-round.
	Abandoned int
	Shuffles  int
}

// Simulator plays blackjack rounds headless with a fixed strategy
type Simulator struct {
	config   Config
	strategy Strategy
	logger   *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Decks <= 0 {
		config.Decks = 1
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	config.Workers = min(config.Workers, config.Rounds)
	if config.Bet < 0 {
		return nil, fmt.Errorf("bet must not be negative, got %d", config.Bet)
	}
	strategy, err := NewStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{
		config:   config,
		strategy: strategy,
		logger:   logger.WithPrefix("simulator"),
	}, nil
}

// Run plays the configured number of rounds across workers. Each worker owns
// its own round, ledger and shoe seeded from the base seed, so a run is
// reproducible for a given seed and worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	workers := s.config.Workers
	perWorker := make([]*workerResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		rounds := s.config.Rounds / workers
		if w < s.config.Rounds%workers {
			rounds++
		}
		g.Go(func() error {
			res, err := s.runWorker(ctx, w, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			perWorker[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Strategy: s.strategy.Name(), Stats: &statistics.Statistics{}}
	for _, wr := range perWorker {
		result.Stats.Merge(wr.stats)
		result.Abandoned += wr.abandoned
		result.Shuffles += wr.shuffles
	}

	if result.Stats.Rounds > 0 {
		if err := result.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	s.logger.Info("Simulation complete",
		"strategy", result.Strategy,
		"rounds", result.Stats.Rounds,
		"abandoned", result.Abandoned,
		"mean", result.Stats.Mean())
	return result, nil
}

type workerResult struct {
	stats     *statistics.Statistics
	abandoned int
	shuffles  int
}

func (s *Simulator) runWorker(ctx context.Context, w, rounds int) (*workerResult, error) {
	seed := randutil.Derive(s.config.Seed, w)
	logger := s.logger.With("worker", w)

	l := ledger.New(ledger.DefaultBalance, s.config.Bet, logger)
	round := game.NewRound(l,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)

	res := &workerResult{stats: &statistics.Statistics{}}
	for range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.needsShuffle(round.State()) {
			if err := round.InitializeDeck(s.config.Decks); err != nil {
				return nil, err
			}
			res.shuffles++
		}

		result, ok := s.playRound(round, l)
		if !ok {
			logger.Warn("Abandoning round, shoe exhausted")
			round.Clear()
			res.abandoned++
			continue
		}
		result.Seed = seed
		res.stats.Add(result)
	}
	return res, nil
}

func (s *Simulator) needsShuffle(state game.State) bool {
	if state.ShoeRemaining < minShoeCards {
		return true
	}
	return s.config.ReshuffleAtCut && state.PastCut
}

// playRound deals and plays one round to completion. It returns false if
// the round could not finish because the shoe ran out.
func (s *Simulator) playRound(round *game.Round, l *ledger.Ledger) (statistics.RoundResult, bool) {
	before := l.Balance()
	bet := l.BetValue()

	round.InitializeHands()
	state := round.State()
	if !state.Dealt() {
		return statistics.RoundResult{}, false
	}
	natural := state.Phase == game.GameOver

	for state.Phase == game.PlayerTurn {
		i := state.CurrentHand
		switch s.strategy.Decide(state, i) {
		case ActionHit:
			round.Hit(i)
		case ActionSplit:
			round.Split(i)
		default:
			round.Stand(i)
		}

		next := round.State()
		if !progressed(state, next) {
			return statistics.RoundResult{}, false
		}
		state = next
	}
	if state.Phase != game.GameOver {
		return statistics.RoundResult{}, false
	}

	return summarize(state, l.Balance()-before, bet, natural), true
}

// progressed reports whether an action changed the round
func progressed(before, after game.State) bool {
	if before.Phase != after.Phase || len(before.Hands) != len(after.Hands) {
		return true
	}
	for i := range before.Hands {
		b, a := before.Hands[i], after.Hands[i]
		if len(b.Cards) != len(a.Cards) || b.Stood != a.Stood || b.Outcome != a.Outcome {
			return true
		}
	}
	return false
}

func summarize(state game.State, delta, bet int, natural bool) statistics.RoundResult {
	net := float64(delta)
	if bet > 0 {
		net /= float64(bet)
	}
	r := statistics.RoundResult{
		Net:     net,
		Hands:   len(state.Hands),
		Natural: natural,
		Split:   len(state.Hands) > 1,
	}
	for _, h := range state.Hands {
		switch h.Outcome {
		case game.OutcomePlayerWins:
			r.Wins++
		case game.OutcomeDealerBusts:
			r.Wins++
			r.DealerBusts++
		case game.OutcomeDealerWins:
			r.Losses++
		case game.OutcomePlayerBusts:
			r.Losses++
			r.PlayerBusts++
		case game.OutcomeTie:
			r.Pushes++
		}
	}
	return r
}
