package game

import (
	"sync"
	"time"

	"github.com/lox/blackjack/blackjack"
)

// EventType represents a round event type with type safety
type EventType string

const (
	EventTypeRoundStarted   EventType = "round_started"
	EventTypeCardDealt      EventType = "card_dealt"
	EventTypeHandSplit      EventType = "hand_split"
	EventTypeHandStood      EventType = "hand_stood"
	EventTypeHandCompleted  EventType = "hand_completed"
	EventTypeDealerRevealed EventType = "dealer_revealed"
	EventTypePhaseChanged   EventType = "phase_changed"
	EventTypeHandSettled    EventType = "hand_settled"
	EventTypeRoundCleared   EventType = "round_cleared"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a round
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventTime struct {
	at time.Time
}

func (e eventTime) Timestamp() time.Time { return e.at }

// RoundStartedEvent is published when the opening cards are dealt.
// The dealer hand carries the hole card face down.
type RoundStartedEvent struct {
	eventTime
	RoundID string
	Bet     int
	Player  blackjack.Hand
	Dealer  blackjack.Hand
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }

// CardDealtEvent is published for every card dealt after the opening deal.
// HandIndex is -1 for the dealer.
type CardDealtEvent struct {
	eventTime
	HandIndex int
	Card      blackjack.Card
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// IsDealer returns true if the card went to the dealer
func (e CardDealtEvent) IsDealer() bool { return e.HandIndex < 0 }

// HandSplitEvent is published when a pair is split into two hands
type HandSplitEvent struct {
	eventTime
	HandIndex int
	NewIndex  int
	Bet       int
}

func (e HandSplitEvent) EventType() EventType { return EventTypeHandSplit }

// HandStoodEvent is published when the player stands on a hand
type HandStoodEvent struct {
	eventTime
	HandIndex int
	Value     int
}

func (e HandStoodEvent) EventType() EventType { return EventTypeHandStood }

// HandCompletedEvent is published when a hand receives its outcome
type HandCompletedEvent struct {
	eventTime
	HandIndex int
	Outcome   Outcome
}

func (e HandCompletedEvent) EventType() EventType { return EventTypeHandCompleted }

// DealerRevealedEvent is published when the hole card is turned over
type DealerRevealedEvent struct {
	eventTime
	HoleCard blackjack.Card
}

func (e DealerRevealedEvent) EventType() EventType { return EventTypeDealerRevealed }

// PhaseChangedEvent is published on every phase transition
type PhaseChangedEvent struct {
	eventTime
	From Phase
	To   Phase
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }

// HandSettledEvent is published once per hand when its wager is settled
type HandSettledEvent struct {
	eventTime
	HandIndex int
	Outcome   Outcome
	Delta     int
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundClearedEvent is published when the table is cleared
type RoundClearedEvent struct {
	eventTime
}

func (e RoundClearedEvent) EventType() EventType { return EventTypeRoundCleared }

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

// OnEvent calls f
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is an in-memory bus delivering events synchronously in
// subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Only comparable subscribers (pointers,
// structs) can be removed; passing a SubscriberFunc panics.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
