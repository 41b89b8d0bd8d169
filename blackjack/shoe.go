package blackjack

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in one standard deck
const DeckSize = 52

// ErrInvalidDeckCount is returned when a shoe is requested with fewer than one deck.
var ErrInvalidDeckCount = errors.New("deck count must be positive")

// Entry is one slot in a shoe: either a card or the cut marker.
type Entry struct {
	Card Card
	Cut  bool
}

// Shoe is a shuffled sequence of one or more decks plus a single cut marker
// placed in the back quarter. Cards are dealt from the front.
type Shoe struct {
	entries []Entry
	decks   int
	pastCut bool
}

// NewShoe builds and shuffles a shoe of the given number of decks using rng.
func NewShoe(rng *rand.Rand, decks int) (*Shoe, error) {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDeckCount, decks)
	}

	n := decks * DeckSize
	cards := make([]Card, 0, n)
	for range decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(rank, suit))
			}
		}
	}

	// Fisher-Yates
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	// Cut marker goes anywhere in [floor(0.75n), n]; n means after the last card.
	start := n * 3 / 4
	cut := start + rng.IntN(n-start+1)

	s := NewShoeFromCards(cards, cut)
	s.decks = decks
	return s, nil
}

// NewShoeFromCards builds an unshuffled shoe dealing cards in the given order
// with the cut marker inserted before cards[cut]. A cut outside [0, len(cards)]
// is clamped. Useful for stacking the shoe in tests and replays.
func NewShoeFromCards(cards []Card, cut int) *Shoe {
	cut = max(0, min(cut, len(cards)))
	entries := make([]Entry, 0, len(cards)+1)
	for i, c := range cards {
		if i == cut {
			entries = append(entries, Entry{Cut: true})
		}
		entries = append(entries, Entry{Card: c.Down()})
	}
	if cut == len(cards) {
		entries = append(entries, Entry{Cut: true})
	}
	return &Shoe{entries: entries, decks: (len(cards) + DeckSize - 1) / DeckSize}
}

// Draw removes and returns the next real card, discarding any cut marker in
// front of it. It returns false once no cards remain.
func (s *Shoe) Draw() (Card, bool) {
	for len(s.entries) > 0 {
		e := s.entries[0]
		s.entries = s.entries[1:]
		if e.Cut {
			s.pastCut = true
			continue
		}
		return e.Card, true
	}
	return Card{}, false
}

// Remaining returns the number of real cards left in the shoe
func (s *Shoe) Remaining() int {
	n := len(s.entries)
	if s.CutIndex() >= 0 {
		n--
	}
	return n
}

// Len returns the number of entries left, cut marker included
func (s *Shoe) Len() int {
	return len(s.entries)
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// CutIndex returns the position of the cut marker among the remaining
// entries, or -1 once it has been passed.
func (s *Shoe) CutIndex() int {
	for i, e := range s.entries {
		if e.Cut {
			return i
		}
	}
	return -1
}

// PastCut reports whether the cut marker has been dealt past. The marker
// never stops dealing on its own; hosts use this to decide when to reshuffle.
func (s *Shoe) PastCut() bool {
	return s.pastCut
}

// Entries returns a copy of the remaining entries in dealing order
func (s *Shoe) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
