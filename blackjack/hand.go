package blackjack

import "strings"

// Hand is an ordered set of cards belonging to the player or the dealer.
type Hand []Card

// NewHand creates a hand from the given cards
func NewHand(cards ...Card) Hand {
	h := make(Hand, len(cards))
	copy(h, cards)
	return h
}

// Value returns the best blackjack total for the hand. Aces count 11 and are
// demoted to 1, one at a time, while the total is over 21.
func (h Hand) Value() int {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Rank.Points()
		if c.IsAce() {
			aces++
		}
	}
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}
	return total
}

// HardTotal returns the total with every ace counted as 1.
func (h Hand) HardTotal() int {
	total := 0
	for _, c := range h {
		if c.IsAce() {
			total++
			continue
		}
		total += c.Rank.Points()
	}
	return total
}

// HasAce returns true if any card in the hand is an ace
func (h Hand) HasAce() bool {
	for _, c := range h {
		if c.IsAce() {
			return true
		}
	}
	return false
}

// IsBust returns true when the hand is over 21
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// IsNatural returns true when the hand totals exactly 21, whatever the
// number of cards.
func (h Hand) IsNatural() bool {
	return h.Value() == 21
}

// IsSoft17 returns true when the hand holds an ace and totals 7 with every
// ace counted as 1 (A+6, A+A+5, A+3+3, ...).
func (h Hand) IsSoft17() bool {
	return h.HasAce() && h.HardTotal() == 7
}

// DealerShouldStop reports whether the dealer stands on this hand. The dealer
// stands on any 17 or more, soft 17 included.
func (h Hand) DealerShouldStop() bool {
	return h.IsSoft17() || h.Value() >= 17
}

// CanSplit returns true for exactly two cards with the same rank label.
// 10+10 splits, K+10 does not.
func (h Hand) CanSplit() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

// Clone returns an independent copy of the hand
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	return NewHand(h...)
}

// String renders the hand as space separated cards
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
