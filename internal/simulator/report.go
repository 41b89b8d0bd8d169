package simulator

import (
	"fmt"
	"io"
)

// WriteSummary writes a human-readable summary of a simulation run
func WriteSummary(w io.Writer, res *Result) {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (%s strategy) ===\n", res.Strategy)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	if res.Abandoned > 0 {
		fmt.Fprintf(w, "Rounds abandoned: %d\n", res.Abandoned)
	}
	fmt.Fprintf(w, "Shuffles: %d\n", res.Shuffles)

	if stats.Rounds == 0 {
		return
	}

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f units/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f units/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f units\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] units/round\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== HAND ANALYSIS ===\n")
	hands := float64(stats.HandsPlayed)
	fmt.Fprintf(w, "Hands played: %d (%d rounds with splits)\n", stats.HandsPlayed, stats.SplitRounds)
	fmt.Fprintf(w, "Wins: %d (%.1f%%), Losses: %d (%.1f%%), Pushes: %d (%.1f%%)\n",
		stats.Wins, float64(stats.Wins)/hands*100,
		stats.Losses, float64(stats.Losses)/hands*100,
		stats.Pushes, float64(stats.Pushes)/hands*100)
	fmt.Fprintf(w, "Player busts: %d, Dealer busts: %d\n", stats.PlayerBusts, stats.DealerBusts)
	fmt.Fprintf(w, "Decided on the deal: %d rounds\n", stats.Naturals)
	fmt.Fprintf(w, "Best round: %+.2f units, worst round: %+.2f units\n", stats.MaxWin, stats.MaxLoss)
}
