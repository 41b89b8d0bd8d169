package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/randutil"
)

const testDelay = 300 * time.Millisecond

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stacked returns a shoe dealing cards in order with the cut marker last.
func stacked(cards string) *blackjack.Shoe {
	cs := blackjack.MustParseCards(cards)
	return blackjack.NewShoeFromCards(cs, len(cs))
}

func newTestRound(t *testing.T, cards string, opts ...Option) (*Round, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(1000, 10, nil)
	base := []Option{
		WithShoe(stacked(cards)),
		WithLogger(quietLogger()),
		WithRNG(randutil.New(1)),
	}
	return NewRound(l, append(base, opts...)...), l
}

func newPacedRound(t *testing.T, cards string) (*Round, *ledger.Ledger, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	r, l := newTestRound(t, cards, WithClock(clock), WithDealerDelay(testDelay))
	return r, l, clock
}

func advance(t *testing.T, clock *quartz.Mock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testDelay).MustWait(ctx)
}

// eventRecorder collects published events for assertions
type eventRecorder struct {
	events []Event
}

func (e *eventRecorder) OnEvent(event Event) {
	e.events = append(e.events, event)
}

func (e *eventRecorder) types() []EventType {
	out := make([]EventType, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.EventType()
	}
	return out
}
