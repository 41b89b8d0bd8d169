package game

import (
	"fmt"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowBets    bool // Include wager amounts on splits and settlements
	ShowPhases  bool // Include phase transitions
	ShowRoundID bool // Include the round ID on round start
}

// EventFormatter provides centralized formatting for round events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns a one-line description of the event, or "" for events the
// options exclude.
func (ef *EventFormatter) Format(event Event) string {
	switch e := event.(type) {
	case RoundStartedEvent:
		text := fmt.Sprintf("Dealt %s, dealer shows %s", e.Player, e.Dealer[1])
		if ef.opts.ShowRoundID {
			text = fmt.Sprintf("Round %s: %s", shortID(e.RoundID), text)
		}
		if ef.opts.ShowBets {
			text += fmt.Sprintf(" (bet $%d)", e.Bet)
		}
		return text
	case CardDealtEvent:
		if e.IsDealer() {
			return fmt.Sprintf("Dealer draws %s", e.Card)
		}
		return fmt.Sprintf("Hand %d draws %s", e.HandIndex+1, e.Card)
	case HandSplitEvent:
		if ef.opts.ShowBets {
			return fmt.Sprintf("Hand %d splits into hand %d (bet $%d)", e.HandIndex+1, e.NewIndex+1, e.Bet)
		}
		return fmt.Sprintf("Hand %d splits into hand %d", e.HandIndex+1, e.NewIndex+1)
	case HandStoodEvent:
		return fmt.Sprintf("Hand %d stands on %d", e.HandIndex+1, e.Value)
	case HandCompletedEvent:
		return fmt.Sprintf("Hand %d: %s", e.HandIndex+1, ef.FormatOutcome(e.Outcome))
	case DealerRevealedEvent:
		return fmt.Sprintf("Dealer reveals %s", e.HoleCard)
	case PhaseChangedEvent:
		if !ef.opts.ShowPhases {
			return ""
		}
		return fmt.Sprintf("Phase %s -> %s", e.From, e.To)
	case HandSettledEvent:
		if !ef.opts.ShowBets {
			return ""
		}
		return fmt.Sprintf("Hand %d settles %s", e.HandIndex+1, formatDelta(e.Delta))
	case RoundClearedEvent:
		return "Table cleared"
	default:
		return ""
	}
}

// FormatOutcome returns a human-readable outcome
func (ef *EventFormatter) FormatOutcome(o Outcome) string {
	switch o {
	case OutcomePlayerWins:
		return "player wins"
	case OutcomeDealerWins:
		return "dealer wins"
	case OutcomePlayerBusts:
		return "player busts"
	case OutcomeDealerBusts:
		return "dealer busts"
	case OutcomeTie:
		return "push"
	default:
		return "in play"
	}
}

func formatDelta(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+$%d", delta)
	case delta < 0:
		return fmt.Sprintf("-$%d", -delta)
	default:
		return "$0"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
