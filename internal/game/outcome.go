package game

import "github.com/lox/blackjack/blackjack"

// Phase is the stage a round is in. Phases only move forward within a
// round; Clear or InitializeHands starts over at PlayerTurn.
type Phase uint8

const (
	PlayerTurn Phase = iota
	DealerTurn
	GameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one player hand
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomePlayerWins
	OutcomeDealerWins
	OutcomePlayerBusts
	OutcomeDealerBusts
	OutcomeTie
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePlayerWins:
		return "player-wins"
	case OutcomeDealerWins:
		return "dealer-wins"
	case OutcomePlayerBusts:
		return "player-busts"
	case OutcomeDealerBusts:
		return "dealer-busts"
	case OutcomeTie:
		return "tie"
	default:
		return "unknown"
	}
}

// PlayerWon returns true for outcomes that pay the player
func (o Outcome) PlayerWon() bool {
	return o == OutcomePlayerWins || o == OutcomeDealerBusts
}

// Delta returns the balance change for a hand with this outcome and wager.
func (o Outcome) Delta(wager int) int {
	switch o {
	case OutcomePlayerWins, OutcomeDealerBusts:
		return wager
	case OutcomeDealerWins, OutcomePlayerBusts:
		return -wager
	default:
		return 0
	}
}

// Resolve compares a finished player hand with the dealer's final hand when
// the dealer did not bust.
func Resolve(player, dealer blackjack.Hand) Outcome {
	pv, dv := player.Value(), dealer.Value()
	switch {
	case pv > 21:
		return OutcomePlayerBusts
	case pv > dv:
		return OutcomePlayerWins
	case dv > pv:
		return OutcomeDealerWins
	default:
		return OutcomeTie
	}
}
