package game

import "github.com/lox/blackjack/blackjack"

// HandState is a read-only view of one player hand
type HandState struct {
	Cards   blackjack.Hand
	Value   int
	Bet     int
	Stood   bool
	Outcome Outcome
}

// Done returns true once the hand has stood or received an outcome
func (h HandState) Done() bool {
	return h.Stood || h.Outcome != OutcomeNone
}

// State is a snapshot of a round for presentation. It shares nothing with
// the round, so it may be kept and read after the round moves on.
type State struct {
	RoundID string
	Phase   Phase

	// Dealer keeps the hole card face down until it is revealed.
	Dealer blackjack.Hand
	// DealerShowing is the value of the dealer's face-up cards only.
	DealerShowing int

	Hands       []HandState
	CurrentHand int

	ShoeRemaining int
	PastCut       bool
}

// Dealt returns true once the opening cards are on the table
func (s State) Dealt() bool {
	return s.RoundID != ""
}

// StoodHands returns the indices of hands the player has stood on
func (s State) StoodHands() []int {
	var out []int
	for i, h := range s.Hands {
		if h.Stood {
			out = append(out, i)
		}
	}
	return out
}

// Outcomes returns the outcome of every hand that has one, keyed by index
func (s State) Outcomes() map[int]Outcome {
	out := make(map[int]Outcome)
	for i, h := range s.Hands {
		if h.Outcome != OutcomeNone {
			out[i] = h.Outcome
		}
	}
	return out
}

// CanHit returns true if hand i is the one the player is acting on
func (s State) CanHit(i int) bool {
	return s.Dealt() && s.Phase == PlayerTurn && i == s.CurrentHand &&
		i >= 0 && i < len(s.Hands) && !s.Hands[i].Done()
}

// CanSplit returns true if hand i is an unfinished splittable pair
func (s State) CanSplit(i int) bool {
	return s.Dealt() && s.Phase == PlayerTurn && i >= 0 && i < len(s.Hands) &&
		!s.Hands[i].Done() && s.Hands[i].Cards.CanSplit()
}

// State returns a snapshot of the round
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := State{
		RoundID:     r.id,
		Phase:       r.phase,
		Dealer:      r.dealer.Clone(),
		CurrentHand: r.current,
		Hands:       make([]HandState, len(r.hands)),
	}

	var showing blackjack.Hand
	for _, c := range r.dealer {
		if c.FaceUp {
			showing = append(showing, c)
		}
	}
	s.DealerShowing = showing.Value()

	for i, h := range r.hands {
		s.Hands[i] = HandState{
			Cards:   h.Cards.Clone(),
			Value:   h.Cards.Value(),
			Bet:     h.Bet,
			Stood:   h.Stood,
			Outcome: h.Outcome,
		}
	}

	if r.shoe != nil {
		s.ShoeRemaining = r.shoe.Remaining()
		s.PastCut = r.shoe.PastCut()
	}
	return s
}
