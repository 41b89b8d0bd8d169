package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/roundid"
)

func TestNewRoundRequiresLedger(t *testing.T) {
	assert.Panics(t, func() { NewRound(nil) })
}

func TestNewRoundIsCleared(t *testing.T) {
	r, _ := newTestRound(t, "9h 7s 6d 5c")
	s := r.State()

	assert.False(t, s.Dealt())
	assert.Equal(t, PlayerTurn, s.Phase)
	assert.Empty(t, s.Dealer)
	require.Len(t, s.Hands, 1)
	assert.Empty(t, s.Hands[0].Cards)
	assert.Equal(t, 0, s.CurrentHand)
	assert.Equal(t, 4, s.ShoeRemaining)
}

func TestInitializeHandsDealOrder(t *testing.T) {
	r, _ := newTestRound(t, "9h 7s 6d 5c")
	r.InitializeHands()
	s := r.State()

	require.True(t, s.Dealt())
	assert.NoError(t, roundid.Validate(s.RoundID))
	assert.Equal(t, PlayerTurn, s.Phase)

	require.Len(t, s.Hands, 1)
	h := s.Hands[0]
	assert.Equal(t, "9♥ 7♠", h.Cards.String())
	assert.True(t, h.Cards[0].FaceUp)
	assert.True(t, h.Cards[1].FaceUp)
	assert.Equal(t, 16, h.Value)
	assert.Equal(t, 10, h.Bet)
	assert.False(t, h.Done())

	require.Len(t, s.Dealer, 2)
	assert.Equal(t, blackjack.Six, s.Dealer[0].Rank)
	assert.False(t, s.Dealer[0].FaceUp, "hole card stays down")
	assert.Equal(t, blackjack.Five, s.Dealer[1].Rank)
	assert.True(t, s.Dealer[1].FaceUp)
	assert.Equal(t, 5, s.DealerShowing)

	assert.Equal(t, 0, s.ShoeRemaining)
	assert.False(t, s.PastCut, "marker sits behind the last card")
}

func TestInitializeHandsAssignsFreshRoundIDs(t *testing.T) {
	r, _ := newTestRound(t, "9h 7s 6d 5c 9d 7c 6s 5h")
	r.InitializeHands()
	first := r.State().RoundID
	r.InitializeHands()
	second := r.State().RoundID

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestInitializeHandsNeedsFourCards(t *testing.T) {
	r, l := newTestRound(t, "10h 5s 10d")
	r.InitializeHands()
	s := r.State()

	assert.False(t, s.Dealt())
	assert.Empty(t, s.Dealer)
	assert.Empty(t, s.Hands[0].Cards)
	assert.Equal(t, 3, s.ShoeRemaining)
	assert.Equal(t, []int{1000}, l.History())
}

func TestInitializeHandsWithoutShoe(t *testing.T) {
	l := ledger.New(1000, 10, nil)
	r := NewRound(l, WithLogger(quietLogger()))
	r.InitializeHands()
	assert.False(t, r.State().Dealt())
}

func TestInitializeDeck(t *testing.T) {
	l := ledger.New(1000, 10, nil)
	r := NewRound(l, WithLogger(quietLogger()))

	err := r.InitializeDeck(0)
	require.ErrorIs(t, err, blackjack.ErrInvalidDeckCount)

	require.NoError(t, r.InitializeDeck(1))
	assert.Equal(t, 52, r.State().ShoeRemaining)

	r.InitializeHands()
	s := r.State()
	assert.True(t, s.Dealt())
	assert.Equal(t, 48, s.ShoeRemaining)

	// replacing the shoe leaves the hands alone
	require.NoError(t, r.InitializeDeck(2))
	after := r.State()
	assert.Equal(t, 104, after.ShoeRemaining)
	assert.Equal(t, s.Hands, after.Hands)
	assert.Equal(t, s.RoundID, after.RoundID)
}

func TestOpeningNaturals(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		outcome Outcome
		balance int
	}{
		{"player natural", "Ah Ks 9d 7c", OutcomePlayerWins, 1010},
		{"dealer natural", "9h 7s Ad Kc", OutcomeDealerWins, 990},
		{"both natural goes to dealer", "Ah Ks Ad Kc", OutcomeDealerWins, 990},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, l := newTestRound(t, tt.cards)
			r.InitializeHands()
			s := r.State()

			assert.Equal(t, GameOver, s.Phase)
			assert.Equal(t, tt.outcome, s.Hands[0].Outcome)
			assert.True(t, s.Dealer[0].FaceUp, "hole card revealed")
			assert.Equal(t, tt.balance, l.Balance())

			// nothing applies once the round is over
			r.Hit(0)
			r.Stand(0)
			assert.Equal(t, s, r.State())
			assert.Equal(t, tt.balance, l.Balance())
		})
	}
}

func TestPlayerBustWithPacedDealer(t *testing.T) {
	r, l, clock := newPacedRound(t, "9h 7s 6d 5c Kh 8d")
	r.InitializeHands()

	r.Hit(0)
	s := r.State()
	require.Len(t, s.Hands[0].Cards, 3)
	assert.Equal(t, 26, s.Hands[0].Value)
	assert.Equal(t, OutcomePlayerBusts, s.Hands[0].Outcome)
	assert.True(t, s.Hands[0].Stood)
	assert.Equal(t, DealerTurn, s.Phase)
	assert.True(t, s.Dealer[0].FaceUp)
	assert.Equal(t, 990, l.Balance())

	advance(t, clock)
	s = r.State()
	assert.Equal(t, DealerTurn, s.Phase)
	require.Len(t, s.Dealer, 3)
	assert.Equal(t, 19, s.Dealer.Value())

	advance(t, clock)
	s = r.State()
	assert.Equal(t, GameOver, s.Phase)
	assert.Equal(t, OutcomePlayerBusts, s.Hands[0].Outcome)
	assert.Equal(t, []int{1000, 990}, l.History())
}

func TestStandOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		dealer  int
		outcome Outcome
		history []int
	}{
		{"dealer wins", "10h 6s 10d 9c", 19, OutcomeDealerWins, []int{1000, 990}},
		{"player wins", "10h 9s 10d 7c", 17, OutcomePlayerWins, []int{1000, 1010}},
		{"tie leaves ledger alone", "10h 8s 10d 8c", 18, OutcomeTie, []int{1000}},
		{"dealer busts", "10h 8s 6d 10c 10d", 26, OutcomeDealerBusts, []int{1000, 1010}},
		{"dealer stands on soft 17", "10h 8s Ad 6c", 17, OutcomePlayerWins, []int{1000, 1010}},
		{"dealer draws to soft 17", "10h 8s Ad Ac 5h", 17, OutcomePlayerWins, []int{1000, 1010}},
		{"dealer draws several", "10h 7s 2d 3c 4h 5d 4s", 18, OutcomeDealerWins, []int{1000, 990}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, l := newTestRound(t, tt.cards)
			r.InitializeHands()
			require.Equal(t, PlayerTurn, r.State().Phase)

			r.Stand(0)
			s := r.State()
			assert.Equal(t, GameOver, s.Phase)
			assert.Equal(t, tt.dealer, s.Dealer.Value())
			assert.Equal(t, tt.outcome, s.Hands[0].Outcome)
			assert.Equal(t, []int{0}, s.StoodHands())
			assert.Equal(t, tt.history, l.History())
		})
	}
}

func TestHitToTwentyOneWinsImmediately(t *testing.T) {
	r, l := newTestRound(t, "10h 5s 10d 6c 6h 10c")
	r.InitializeHands()

	r.Hit(0)
	s := r.State()

	assert.Equal(t, 21, s.Hands[0].Value)
	assert.True(t, s.Hands[0].Stood)
	assert.Equal(t, GameOver, s.Phase)
	assert.Equal(t, 26, s.Dealer.Value(), "dealer still plays out")
	assert.Equal(t, OutcomePlayerWins, s.Hands[0].Outcome, "dealer bust does not overwrite")
	assert.Equal(t, []int{1000, 1010}, l.History())
}

func TestHitBelowTwentyOneKeepsTurn(t *testing.T) {
	r, _ := newTestRound(t, "2h 3s 10d 7c 4h 5c")
	r.InitializeHands()

	r.Hit(0)
	r.Hit(0)
	s := r.State()

	assert.Equal(t, 14, s.Hands[0].Value)
	assert.Equal(t, PlayerTurn, s.Phase)
	assert.False(t, s.Hands[0].Done())
	assert.True(t, s.CanHit(0))
}

func TestHitWithExhaustedShoe(t *testing.T) {
	r, _ := newTestRound(t, "10h 5s 10d 7c")
	r.InitializeHands()
	before := r.State()

	r.Hit(0)
	after := r.State()
	assert.Equal(t, before.Hands, after.Hands)
	assert.Equal(t, PlayerTurn, after.Phase)
	assert.True(t, after.PastCut)
}

func TestDealerStallsOnExhaustedShoe(t *testing.T) {
	r, l := newTestRound(t, "10h 8s 10d 5c")
	r.InitializeHands()

	r.Stand(0)
	s := r.State()
	assert.Equal(t, DealerTurn, s.Phase)
	assert.Equal(t, OutcomeNone, s.Hands[0].Outcome)
	assert.Equal(t, []int{1000}, l.History())

	r.Clear()
	assert.Equal(t, PlayerTurn, r.State().Phase)
}

func TestInvalidActionsAreIgnored(t *testing.T) {
	t.Run("before the deal", func(t *testing.T) {
		r, _ := newTestRound(t, "8h 8s 10d 7c 5h")
		before := r.State()
		r.Hit(0)
		r.Stand(0)
		r.Split(0)
		assert.Equal(t, before, r.State())
	})

	t.Run("out of range", func(t *testing.T) {
		r, _ := newTestRound(t, "8h 8s 10d 7c 5h")
		r.InitializeHands()
		before := r.State()
		r.Hit(-1)
		r.Hit(1)
		r.Stand(3)
		r.Split(1)
		r.Split(-1)
		assert.Equal(t, before, r.State())
	})

	t.Run("split of non-pair", func(t *testing.T) {
		r, _ := newTestRound(t, "8h 9s 10d 7c 5h")
		r.InitializeHands()
		before := r.State()
		r.Split(0)
		assert.Equal(t, before, r.State())
		assert.False(t, before.CanSplit(0))
	})

	t.Run("split of mismatched tens", func(t *testing.T) {
		r, _ := newTestRound(t, "Kh Qs 10d 7c 5h")
		r.InitializeHands()
		before := r.State()
		r.Split(0)
		assert.Equal(t, before, r.State())
	})

	t.Run("acting on a hand that is not current", func(t *testing.T) {
		r, _ := newTestRound(t, "8h 8s 10d 7c 5h 6h")
		r.InitializeHands()
		r.Split(0)
		before := r.State()
		require.Equal(t, 0, before.CurrentHand)

		r.Hit(1)
		r.Stand(1)
		assert.Equal(t, before, r.State())
	})

	t.Run("standing twice", func(t *testing.T) {
		r, _ := newTestRound(t, "8h 8s 10d 7c 5h 6h")
		r.InitializeHands()
		r.Split(0)
		r.Stand(0)
		before := r.State()
		require.Equal(t, 1, before.CurrentHand)

		r.Stand(0)
		assert.Equal(t, before, r.State())
	})

	t.Run("after game over", func(t *testing.T) {
		r, l := newTestRound(t, "10h 9s 10d 7c 5h")
		r.InitializeHands()
		r.Stand(0)
		before := r.State()
		r.Hit(0)
		r.Stand(0)
		r.Split(0)
		assert.Equal(t, before, r.State())
		assert.Equal(t, []int{1000, 1010}, l.History())
	})
}

func TestSplitSequencing(t *testing.T) {
	r, l := newTestRound(t, "8h 8s 9c 7d 8d 3c Kd 3h Qs 2s")
	r.InitializeHands()

	require.NoError(t, l.SetBetValue(20))
	r.Split(0)
	s := r.State()
	require.Len(t, s.Hands, 2)
	assert.Equal(t, "8♥", s.Hands[0].Cards.String())
	assert.Equal(t, 10, s.Hands[0].Bet)
	assert.Equal(t, "8♠", s.Hands[1].Cards.String())
	assert.Equal(t, 20, s.Hands[1].Bet)
	assert.Equal(t, 0, s.CurrentHand)

	r.Hit(0)
	require.NoError(t, l.SetBetValue(30))
	r.Split(0)
	s = r.State()
	require.Len(t, s.Hands, 3)
	assert.Equal(t, []int{10, 30, 20}, []int{s.Hands[0].Bet, s.Hands[1].Bet, s.Hands[2].Bet})
	assert.Equal(t, "8♠", s.Hands[2].Cards.String(), "later hands shift with their bets")

	r.Hit(0)
	r.Stand(0)
	assert.Equal(t, 1, r.State().CurrentHand)

	r.Hit(1)
	r.Stand(1)
	assert.Equal(t, 2, r.State().CurrentHand)

	r.Hit(2)
	r.Hit(2)

	s = r.State()
	assert.Equal(t, GameOver, s.Phase)
	assert.Equal(t, 18, s.Dealer.Value())
	assert.Equal(t, []int{11, 18, 21}, []int{s.Hands[0].Value, s.Hands[1].Value, s.Hands[2].Value})
	assert.Equal(t, map[int]Outcome{
		0: OutcomeDealerWins,
		1: OutcomeTie,
		2: OutcomePlayerWins,
	}, s.Outcomes())
	assert.Equal(t, []int{0, 1, 2}, s.StoodHands())
	assert.Equal(t, []int{1000, 1020, 1010}, l.History())
}

func TestSplitOfFinishedHandIgnored(t *testing.T) {
	r, _ := newTestRound(t, "8h 8s 10d 7c 8d 9h")
	r.InitializeHands()

	r.Split(0)
	r.Hit(0)
	r.Stand(0)
	require.Equal(t, 1, r.State().CurrentHand)

	// hand 0 is finished so it can no longer split
	r.Split(0)
	s := r.State()
	require.Len(t, s.Hands, 2)
	assert.Equal(t, 1, s.CurrentHand)
}

func TestSplitHandsEachBust(t *testing.T) {
	r, l := newTestRound(t, "8h 8s 10d 7c Kh 5c Qd Jc 9s")
	r.InitializeHands()
	r.Split(0)

	r.Hit(0)
	r.Hit(0)
	r.Hit(0)
	s := r.State()
	assert.Equal(t, OutcomePlayerBusts, s.Hands[0].Outcome)
	assert.Equal(t, 1, s.CurrentHand)
	assert.Equal(t, PlayerTurn, s.Phase)

	r.Hit(1)
	r.Hit(1)
	s = r.State()
	assert.Equal(t, OutcomePlayerBusts, s.Hands[1].Outcome)
	assert.Equal(t, GameOver, s.Phase)
	assert.Equal(t, 17, s.Dealer.Value())
	assert.Equal(t, []int{1000, 990, 980}, l.History())
}

func TestClearCancelsPacedDealer(t *testing.T) {
	r, l, clock := newPacedRound(t, "10h 8s 10d 5c 9h")
	r.InitializeHands()
	r.Stand(0)
	require.Equal(t, DealerTurn, r.State().Phase)

	r.Clear()
	cleared := r.State()
	assert.False(t, cleared.Dealt())
	assert.Equal(t, PlayerTurn, cleared.Phase)
	assert.Empty(t, cleared.Dealer)
	assert.Equal(t, 1, cleared.ShoeRemaining)

	advance(t, clock)
	assert.Equal(t, cleared, r.State())
	assert.Equal(t, []int{1000}, l.History())
}

func TestRestartDuringPacedDealer(t *testing.T) {
	r, l, clock := newPacedRound(t, "10h 8s 10d 5c 2h 3d 4c 5s 9h")
	r.InitializeHands()
	r.Stand(0)
	require.Equal(t, DealerTurn, r.State().Phase)

	r.InitializeHands()
	restarted := r.State()
	assert.Equal(t, PlayerTurn, restarted.Phase)
	assert.Equal(t, 5, restarted.Hands[0].Value)

	advance(t, clock)
	assert.Equal(t, restarted, r.State())
	assert.Equal(t, 1, r.State().ShoeRemaining)
	assert.Equal(t, []int{1000}, l.History())
}

func TestStaleDealerStepIsNoop(t *testing.T) {
	r, l, _ := newPacedRound(t, "10h 8s 10d 5c 9h")
	r.InitializeHands()
	r.Stand(0)

	r.mu.Lock()
	gen := r.generation
	r.mu.Unlock()

	r.Clear()

	r.mu.Lock()
	done := r.dealerStep(gen)
	r.mu.Unlock()

	assert.True(t, done)
	assert.Empty(t, r.State().Dealer)
	assert.Equal(t, 1, r.State().ShoeRemaining)
	assert.Equal(t, []int{1000}, l.History())
}

func TestSettlementIsIdempotent(t *testing.T) {
	r, l := newTestRound(t, "10h 9s 10d 7c")
	r.InitializeHands()
	r.Stand(0)
	require.Equal(t, []int{1000, 1010}, l.History())

	for range 2 {
		r.mu.Lock()
		r.finalizeOutcomes()
		r.dealerBusts()
		r.settle()
		r.mu.Unlock()
	}

	assert.Equal(t, OutcomePlayerWins, r.State().Hands[0].Outcome)
	assert.Equal(t, []int{1000, 1010}, l.History())
}

func TestBetChangeMidRoundOnlyAffectsNewHands(t *testing.T) {
	r, l := newTestRound(t, "10h 9s 10d 7c")
	r.InitializeHands()
	require.NoError(t, l.SetBetValue(50))
	r.Stand(0)

	assert.Equal(t, 10, r.State().Hands[0].Bet)
	assert.Equal(t, 1010, l.Balance())
}

func TestZeroBetSettlesWithoutMovingBalance(t *testing.T) {
	l := ledger.New(1000, 0, nil)
	r := NewRound(l, WithShoe(stacked("10h 9s 10d 7c")), WithLogger(quietLogger()))
	r.InitializeHands()
	r.Stand(0)

	assert.Equal(t, OutcomePlayerWins, r.State().Hands[0].Outcome)
	assert.Equal(t, []int{1000}, l.History())
}

func TestStateIsACopy(t *testing.T) {
	r, _ := newTestRound(t, "9h 7s 6d 5c")
	r.InitializeHands()

	s := r.State()
	s.Hands[0].Cards[0] = blackjack.NewCard(blackjack.Ace, blackjack.Spades)
	s.Dealer[0] = s.Dealer[0].Up()

	fresh := r.State()
	assert.Equal(t, blackjack.Nine, fresh.Hands[0].Cards[0].Rank)
	assert.False(t, fresh.Dealer[0].FaceUp)
}
