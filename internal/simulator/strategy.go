package simulator

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownStrategy is returned for strategy names NewStrategy does not know
var ErrUnknownStrategy = errors.New("unknown strategy")

// maxHands caps how far a strategy keeps splitting
const maxHands = 4

// Action is a player decision
type Action int

const (
	ActionStand Action = iota
	ActionHit
	ActionSplit
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionStand:
		return "stand"
	case ActionHit:
		return "hit"
	case ActionSplit:
		return "split"
	default:
		return "unknown"
	}
}

// Strategy decides how to play the current hand of a round
type Strategy interface {
	Name() string
	Decide(state game.State, hand int) Action
}

// Strategies lists the names NewStrategy accepts
var Strategies = []string{"stand", "mimic", "basic"}

// NewStrategy creates a strategy by name
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "stand":
		return StandStrategy{}, nil
	case "mimic":
		return MimicStrategy{}, nil
	case "basic":
		return BasicStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// StandStrategy stands on every hand as dealt
type StandStrategy struct{}

func (StandStrategy) Name() string { return "stand" }

func (StandStrategy) Decide(game.State, int) Action { return ActionStand }

// MimicStrategy plays the dealer's rule: hit below 17, never split
type MimicStrategy struct{}

func (MimicStrategy) Name() string { return "mimic" }

func (MimicStrategy) Decide(state game.State, hand int) Action {
	if state.Hands[hand].Cards.DealerShouldStop() {
		return ActionStand
	}
	return ActionHit
}

// BasicStrategy is a simplified basic strategy for a game with no doubling
// or surrender, keyed on the dealer's up card.
type BasicStrategy struct{}

func (BasicStrategy) Name() string { return "basic" }

func (b BasicStrategy) Decide(state game.State, hand int) Action {
	h := state.Hands[hand].Cards
	up := state.DealerShowing

	if state.CanSplit(hand) && len(state.Hands) < maxHands && b.shouldSplit(h[0].Rank, up) {
		return ActionSplit
	}

	total := h.Value()
	soft := h.HasAce() && total != h.HardTotal()
	if soft {
		switch {
		case total <= 17:
			return ActionHit
		case total == 18 && up >= 9:
			return ActionHit
		default:
			return ActionStand
		}
	}

	switch {
	case total <= 11:
		return ActionHit
	case total == 12:
		if up >= 4 && up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total <= 16:
		if up >= 2 && up <= 6 {
			return ActionStand
		}
		return ActionHit
	default:
		return ActionStand
	}
}

func (BasicStrategy) shouldSplit(rank blackjack.Rank, up int) bool {
	switch rank {
	case blackjack.Ace, blackjack.Eight:
		return true
	case blackjack.Nine:
		return up >= 2 && up <= 9 && up != 7
	case blackjack.Two, blackjack.Three, blackjack.Seven:
		return up >= 2 && up <= 7
	case blackjack.Six:
		return up >= 2 && up <= 6
	default:
		return false
	}
}
