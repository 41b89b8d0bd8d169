package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/roundid"
)

// Ledger is the balance collaborator a round settles against.
type Ledger interface {
	BetValue() int
	UpdateBalance(delta int)
}

// PlayerHand is one player hand together with its own bookkeeping. Keeping
// the wager, stand marker and outcome on the record means a split that
// shifts later hands moves their state with them.
type PlayerHand struct {
	Cards   blackjack.Hand
	Bet     int
	Stood   bool
	Outcome Outcome

	settled bool
}

// Done returns true once the hand has stood or received an outcome
func (h *PlayerHand) Done() bool {
	return h.Stood || h.Outcome != OutcomeNone
}

// Round is the blackjack round state machine for a single player. All
// methods are safe for concurrent use; actions are serialised so only one
// mutates the round at a time. Invalid actions are ignored.
type Round struct {
	mu sync.Mutex

	ledger Ledger
	rng    *rand.Rand
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger
	bus    EventBus
	ids    *roundid.Generator

	shoe    *blackjack.Shoe
	id      string
	dealt   bool
	dealer  blackjack.Hand
	hands   []*PlayerHand
	current int
	phase   Phase

	revealed    bool
	generation  uint64
	dealerTimer *quartz.Timer

	pending []Event
}

// NewRound creates a cleared round settling against ledger.
//
//	l := ledger.New(1000, 10, logger)
//	r := game.NewRound(l, game.WithLogger(logger), game.WithDealerDelay(300*time.Millisecond))
//	if err := r.InitializeDeck(6); err != nil { ... }
//	r.InitializeHands()
func NewRound(ledger Ledger, opts ...Option) *Round {
	if ledger == nil {
		panic("ledger is required for round creation")
	}
	cfg := newRoundConfig(opts)

	r := &Round{
		ledger: ledger,
		rng:    cfg.rng,
		clock:  cfg.clock,
		delay:  cfg.delay,
		logger: cfg.logger.WithPrefix("round"),
		bus:    cfg.bus,
		ids:    cfg.ids,
		shoe:   cfg.shoe,
	}
	r.reset()
	return r
}

// Subscribe registers a subscriber for round events
func (r *Round) Subscribe(sub EventSubscriber) {
	r.bus.Subscribe(sub)
}

// Unsubscribe removes a subscriber
func (r *Round) Unsubscribe(sub EventSubscriber) {
	r.bus.Unsubscribe(sub)
}

// InitializeDeck replaces the shoe with a freshly shuffled one. The hands
// in play are not touched.
func (r *Round) InitializeDeck(decks int) error {
	var err error
	r.do(func() {
		var shoe *blackjack.Shoe
		shoe, err = blackjack.NewShoe(r.rng, decks)
		if err != nil {
			err = fmt.Errorf("initialize deck: %w", err)
			return
		}
		r.shoe = shoe
		r.logger.Info("Shoe shuffled", "decks", decks, "cards", shoe.Remaining(), "cut", shoe.CutIndex())
	})
	return err
}

// InitializeHands starts a new round: two cards to the player, two to the
// dealer with the first face down. Dealer 21 ends the round for the dealer,
// otherwise player 21 ends it for the player. Nothing happens when fewer
// than four cards remain.
func (r *Round) InitializeHands() {
	r.do(r.initializeHands)
}

// Hit draws a card into hand i. It only applies to the current hand during
// the player's turn.
func (r *Round) Hit(i int) {
	r.do(func() { r.hit(i) })
}

// Stand finishes hand i without drawing. It only applies to the current
// hand during the player's turn.
func (r *Round) Stand(i int) {
	r.do(func() { r.stand(i) })
}

// Split turns an unfinished pair at hand i into two one-card hands. The new
// hand is inserted at i+1 and wagers the ledger's current bet value.
func (r *Round) Split(i int) {
	r.do(func() { r.split(i) })
}

// Clear resets the table to a single empty hand and cancels any dealer
// play still in flight. The shoe is kept.
func (r *Round) Clear() {
	r.do(func() {
		r.reset()
		r.emit(RoundClearedEvent{eventTime: r.now()})
		r.logger.Debug("Table cleared")
	})
}

func (r *Round) initializeHands() {
	if r.shoe == nil || r.shoe.Remaining() < 4 {
		remaining := 0
		if r.shoe != nil {
			remaining = r.shoe.Remaining()
		}
		r.logger.Warn("Not enough cards to deal", "remaining", remaining)
		return
	}

	r.reset()
	r.id = r.ids.New()
	r.dealt = true

	p1, _ := r.shoe.Draw()
	p2, _ := r.shoe.Draw()
	d1, _ := r.shoe.Draw()
	d2, _ := r.shoe.Draw()

	bet := r.ledger.BetValue()
	r.hands = []*PlayerHand{{Cards: blackjack.Hand{p1.Up(), p2.Up()}, Bet: bet}}
	r.dealer = blackjack.Hand{d1.Down(), d2.Up()}

	r.logger.Info("Round started", "round", r.id, "bet", bet, "player", r.hands[0].Cards, "dealerUp", d2.Up())
	r.emit(RoundStartedEvent{
		eventTime: r.now(),
		RoundID:   r.id,
		Bet:       bet,
		Player:    r.hands[0].Cards.Clone(),
		Dealer:    r.dealer.Clone(),
	})

	player := r.hands[0].Cards
	switch {
	case r.dealer.IsNatural():
		r.resolve(0, OutcomeDealerWins)
	case player.IsNatural():
		r.resolve(0, OutcomePlayerWins)
	case player.IsBust():
		r.resolve(0, OutcomePlayerBusts)
	default:
		return
	}

	r.revealHole()
	r.settle()
	r.setPhase(GameOver)
}

func (r *Round) hit(i int) {
	h, ok := r.actionable(i, "hit")
	if !ok {
		return
	}
	card, ok := r.shoe.Draw()
	if !ok {
		r.logger.Warn("Shoe exhausted, hit ignored", "round", r.id, "hand", i)
		return
	}
	card = card.Up()
	h.Cards = append(h.Cards, card)
	r.logger.Debug("Player hit", "hand", i, "card", card, "value", h.Cards.Value())
	r.emit(CardDealtEvent{eventTime: r.now(), HandIndex: i, Card: card})

	switch {
	case h.Cards.IsBust():
		r.resolve(i, OutcomePlayerBusts)
	case h.Cards.IsNatural():
		r.resolve(i, OutcomePlayerWins)
	default:
		return
	}
	h.Stood = true
	r.settle()
	r.advance()
}

func (r *Round) stand(i int) {
	h, ok := r.actionable(i, "stand")
	if !ok {
		return
	}
	h.Stood = true
	r.logger.Debug("Player stood", "hand", i, "value", h.Cards.Value())
	r.emit(HandStoodEvent{eventTime: r.now(), HandIndex: i, Value: h.Cards.Value()})
	r.advance()
}

func (r *Round) split(i int) {
	if !r.dealt || r.phase != PlayerTurn || i < 0 || i >= len(r.hands) {
		r.logger.Debug("Ignoring split", "hand", i, "phase", r.phase)
		return
	}
	h := r.hands[i]
	if h.Done() || !h.Cards.CanSplit() {
		r.logger.Debug("Ignoring split of unsplittable hand", "hand", i, "cards", h.Cards)
		return
	}

	bet := r.ledger.BetValue()
	second := h.Cards[1]
	h.Cards = blackjack.Hand{h.Cards[0]}
	r.hands = slices.Insert(r.hands, i+1, &PlayerHand{Cards: blackjack.Hand{second}, Bet: bet})
	if r.current > i {
		r.current++
	}

	r.logger.Debug("Hand split", "hand", i, "hands", len(r.hands), "bet", bet)
	r.emit(HandSplitEvent{eventTime: r.now(), HandIndex: i, NewIndex: i + 1, Bet: bet})
}

// actionable returns hand i if the player may act on it right now.
func (r *Round) actionable(i int, action string) (*PlayerHand, bool) {
	if !r.dealt || r.phase != PlayerTurn {
		r.logger.Debug("Ignoring action outside player turn", "action", action, "phase", r.phase)
		return nil, false
	}
	if i != r.current || i < 0 || i >= len(r.hands) {
		r.logger.Debug("Ignoring action on inactive hand", "action", action, "hand", i, "current", r.current)
		return nil, false
	}
	h := r.hands[i]
	if h.Done() {
		r.logger.Debug("Ignoring action on finished hand", "action", action, "hand", i)
		return nil, false
	}
	return h, true
}

// advance moves to the first unfinished hand, or hands over to the dealer
// once every hand is finished.
func (r *Round) advance() {
	for j, h := range r.hands {
		if !h.Done() {
			r.current = j
			return
		}
	}
	r.startDealerTurn()
}

// resolve assigns an outcome to hand i unless it already has one.
func (r *Round) resolve(i int, o Outcome) {
	h := r.hands[i]
	if h.Outcome != OutcomeNone {
		return
	}
	h.Outcome = o
	r.logger.Debug("Hand resolved", "round", r.id, "hand", i, "outcome", o)
	r.emit(HandCompletedEvent{eventTime: r.now(), HandIndex: i, Outcome: o})
}

func (r *Round) revealHole() {
	if r.revealed || len(r.dealer) == 0 {
		return
	}
	r.dealer[0] = r.dealer[0].Up()
	r.revealed = true
	r.emit(DealerRevealedEvent{eventTime: r.now(), HoleCard: r.dealer[0]})
}

func (r *Round) setPhase(p Phase) {
	if r.phase == p {
		return
	}
	from := r.phase
	r.phase = p
	if p == GameOver {
		r.logger.Info("Round over", "round", r.id, "dealer", r.dealer.Value(), "hands", len(r.hands))
	}
	r.emit(PhaseChangedEvent{eventTime: r.now(), From: from, To: p})
}

// reset clears all round state and invalidates any scheduled dealer step.
func (r *Round) reset() {
	r.generation++
	if r.dealerTimer != nil {
		r.dealerTimer.Stop()
		r.dealerTimer = nil
	}
	r.id = ""
	r.dealt = false
	r.dealer = nil
	r.hands = []*PlayerHand{{}}
	r.current = 0
	r.phase = PlayerTurn
	r.revealed = false
}

func (r *Round) now() time.Time {
	return r.clock.Now()
}

func (r *Round) emit(e Event) {
	r.pending = append(r.pending, e)
}

// do runs fn under the round lock and publishes the events it produced
// after unlocking, so subscribers may call back into the round.
func (r *Round) do(fn func()) {
	r.mu.Lock()
	fn()
	events := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, e := range events {
		r.bus.Publish(e)
	}
}
