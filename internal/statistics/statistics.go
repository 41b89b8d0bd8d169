package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single blackjack round
type RoundResult struct {
	Net   float64 // Net units won/lost (balance change divided by the opening bet)
	Seed  int64   // Seed of the shoe the round was dealt from (for replay)
	Hands int     // Hands played after splits

	Wins        int // Hands paid to the player, dealer busts included
	Losses      int // Hands lost, player busts included
	Pushes      int // Tied hands
	PlayerBusts int
	DealerBusts int

	Natural bool // Round was decided on the opening deal
	Split   bool // At least one split happened
}

// Statistics tracks blackjack simulation statistics
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Per-hand counters
	HandsPlayed int
	Wins        int
	Losses      int
	Pushes      int
	PlayerBusts int
	DealerBusts int

	// Round analytics
	Naturals    int
	SplitRounds int
	WinningNet  float64 // Net from rounds that finished ahead
	LosingNet   float64 // Net from rounds that finished level or behind
	AllNet      float64 // Total net for sanity check

	MaxWin  float64
	MaxLoss float64
}

// Mean returns the arithmetic mean of all results in units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.Net
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.HandsPlayed += result.Hands
	s.Wins += result.Wins
	s.Losses += result.Losses
	s.Pushes += result.Pushes
	s.PlayerBusts += result.PlayerBusts
	s.DealerBusts += result.DealerBusts

	if result.Natural {
		s.Naturals++
	}
	if result.Split {
		s.SplitRounds++
	}

	if net > 0 {
		s.WinningNet += net
	} else {
		s.LosingNet += net
	}
	s.AllNet += net

	if net > s.MaxWin {
		s.MaxWin = net
	}
	if net < s.MaxLoss {
		s.MaxLoss = net
	}
}

// Merge folds other into s. Used to combine per-worker statistics.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.HandsPlayed += other.HandsPlayed
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts

	s.Naturals += other.Naturals
	s.SplitRounds += other.SplitRounds
	s.WinningNet += other.WinningNet
	s.LosingNet += other.LosingNet
	s.AllNet += other.AllNet

	s.MaxWin = max(s.MaxWin, other.MaxWin)
	s.MaxLoss = min(s.MaxLoss, other.MaxLoss)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// WinRate returns the share of settled hands the player won
func (s *Statistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.HandsPlayed)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.WinningNet-s.LosingNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.6f, WinningNet=%.6f, LosingNet=%.6f",
			s.AllNet, s.WinningNet, s.LosingNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.HandsPlayed < s.Rounds {
		return fmt.Errorf("hands played (%d) is less than rounds (%d)", s.HandsPlayed, s.Rounds)
	}

	settled := s.Wins + s.Losses + s.Pushes
	if settled != s.HandsPlayed {
		return fmt.Errorf("settled hands (%d) does not match hands played (%d)", settled, s.HandsPlayed)
	}

	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}
	if s.DealerBusts > s.Wins {
		return fmt.Errorf("dealer busts (%d) exceed wins (%d)", s.DealerBusts, s.Wins)
	}
	if s.SplitRounds > s.Rounds || s.Naturals > s.Rounds {
		return fmt.Errorf("round counters exceed rounds (%d)", s.Rounds)
	}

	return nil
}
