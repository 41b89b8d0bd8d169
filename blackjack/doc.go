// Package blackjack implements the card primitives for a blackjack table:
// cards, hand valuation and the multi-deck shoe.
//
// # Valuation
//
// Hand.Value counts aces as 11 and demotes them to 1 while the total is over
// 21. Soft 17 is any hand holding an ace whose all-aces-low total is 7, and
// the dealer stands on it:
//
//	h := blackjack.NewHand(blackjack.MustParseCards("As 6d")...)
//	h.Value()            // 17
//	h.IsSoft17()         // true
//	h.DealerShouldStop() // true
//
// # Shoe
//
// NewShoe shuffles N decks with an injected *rand.Rand and places one cut
// marker in the back quarter. Draw skips the marker transparently:
//
//	rng := randutil.New(42)
//	shoe, err := blackjack.NewShoe(rng, 6)
//	card, ok := shoe.Draw()
//
// NewShoeFromCards stacks a shoe in a fixed order for deterministic tests.
package blackjack
