// Package game implements the blackjack round state machine.
//
// The main type is Round, which owns the shoe, the dealer hand and one or
// more player hands, sequences the player's turn across split hands, plays
// the dealer out and settles each hand's wager against a Ledger.
//
// # Basic Usage
//
//	l := ledger.New(1000, 10, logger)
//	r := game.NewRound(l)
//	if err := r.InitializeDeck(6); err != nil {
//	    return err
//	}
//	r.InitializeHands()
//	r.Hit(0)
//	r.Stand(0)
//	state := r.State()
//
// Actions that do not apply (hitting after the round is over, standing on a
// hand twice, splitting a non-pair) are ignored.
//
// # Dealer pacing
//
// By default the dealer plays synchronously inside the action that ended the
// player's turn. WithDealerDelay spaces dealer draws on a quartz.Clock; each
// scheduled step checks that its round has not been cleared or restarted
// before touching state. Tests drive the pacing with quartz.NewMock:
//
//	clock := quartz.NewMock(t)
//	r := game.NewRound(l, game.WithClock(clock), game.WithDealerDelay(300*time.Millisecond))
//	...
//	clock.Advance(300 * time.Millisecond).MustWait(ctx)
//
// # Deterministic Testing
//
// WithShoe stacks the cards in a known order:
//
//	shoe := blackjack.NewShoeFromCards(blackjack.MustParseCards("9h 7s 6d 5c Kh"), 5)
//	r := game.NewRound(l, game.WithShoe(shoe))
//
// # Events
//
// Rounds publish events (RoundStartedEvent, CardDealtEvent, HandSettledEvent,
// ...) to an EventBus. Events are delivered after the round lock is
// released, so subscribers may read State or invoke actions.
package game
