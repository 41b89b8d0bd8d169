// Package ledger tracks the player's running balance, the bet value used
// for new hands and the history of balances after every settlement.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	DefaultBalance = 1000
	DefaultBet     = 10
)

// ErrNegativeBet is returned when a bet value below zero is requested.
var ErrNegativeBet = errors.New("bet value must not be negative")

// Ledger holds the balance and bet for one player. It is safe for
// concurrent use.
type Ledger struct {
	mu      sync.Mutex
	balance int
	bet     int
	history []int
	logger  *log.Logger
}

// New creates a ledger with the given starting balance and bet.
func New(balance, bet int, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if bet < 0 {
		bet = 0
	}
	return &Ledger{
		balance: balance,
		bet:     bet,
		history: []int{balance},
		logger:  logger.WithPrefix("ledger"),
	}
}

// Balance returns the current balance
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// UpdateBalance applies delta and appends the new balance to the history.
// The balance may go negative.
func (l *Ledger) UpdateBalance(delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += delta
	l.history = append(l.history, l.balance)
	l.logger.Debug("Balance updated", "delta", delta, "balance", l.balance)
}

// Reset sets the balance to initial and restarts the history from it. The
// bet value is left alone.
func (l *Ledger) Reset(initial int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = initial
	l.history = []int{initial}
	l.logger.Info("Balance reset", "balance", initial)
}

// BetValue returns the wager applied to newly dealt or split hands
func (l *Ledger) BetValue() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bet
}

// SetBetValue changes the wager for future hands. Zero is allowed.
func (l *Ledger) SetBetValue(v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeBet, v)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bet = v
	return nil
}

// History returns a copy of every balance recorded since the last reset,
// starting with the initial balance.
func (l *Ledger) History() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, len(l.history))
	copy(out, l.history)
	return out
}
