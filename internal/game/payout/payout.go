// Package payout implements the Payout Calculator (C4): maps clusters and
// scatter counts to credit payouts using the paytable tiers, and applies
// the max-win cap.
package payout

import (
	"math"

	"github.com/slotmachine/backend/internal/game/cluster"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// unitDivisor is the bet-unit scale referenced by spec.md §4.4:
// payout = (bet / 20) * P[s][tier].
const unitDivisor = 20.0

// ClusterPayout returns the credit payout for one cluster given the bet.
func ClusterPayout(c cluster.Cluster, bet float64) float64 {
	tier := symbols.ClusterTier(c.Size())
	if tier == 0 {
		return 0
	}
	return (bet / unitDivisor) * symbols.GetPayout(c.Symbol, tier)
}

// ScatterPayout returns the credit payout for a given scatter count on a
// grid, saturated into its own tier table. Returns 0 below the smallest
// scatter tier.
func ScatterPayout(scatterCount int, bet float64) float64 {
	tier := symbols.ScatterTier(scatterCount)
	if tier == 0 {
		return 0
	}
	return (bet / unitDivisor) * symbols.GetScatterPayout(tier)
}

// ApplyMaxWinCap truncates totalWin to bet*maxWinMultiplier, then rounds
// to 2 decimal places - cap THEN round, per spec.md §9's resolution of the
// max-win/round-order open question.
func ApplyMaxWinCap(totalWin, bet float64, maxWinMultiplier int) float64 {
	cap := bet * float64(maxWinMultiplier)
	if totalWin > cap {
		totalWin = cap
	}
	return Round2(totalWin)
}

// Round2 rounds to 2 decimal places using standard half-up rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
