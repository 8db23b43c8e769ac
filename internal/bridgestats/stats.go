// Package bridgestats simulates the bridge activity figures shown on the landing page.
// The numbers are not real: Next is a bounded random walk driven by a caller-supplied sample.
package bridgestats

import (
	"math"
	"time"
)

const (
	transactionsPerSecond = 0.8
	averageTicketUSD      = 850.0

	minActiveBridges = 10
	maxActiveBridges = 500

	minBridgeSeconds = 30.0
	maxBridgeSeconds = 600.0
)

type Stats struct {
	TotalVolumeUSD       float64
	TotalTransactions    int64
	ActiveBridges        int64
	AverageBridgeSeconds float64
	UpdatedAt            time.Time

	// fraction of a transaction accrued but not yet counted
	pendingTransactions float64
}

// Initial returns the figures the simulation starts from.
func Initial(now time.Time) Stats {
	return Stats{
		TotalVolumeUSD:       125_000_000,
		TotalTransactions:    480_000,
		ActiveBridges:        120,
		AverageBridgeSeconds: 95,
		UpdatedAt:            now,
	}
}

// Next advances stats by elapsed using sample, a uniform value in [0, 1). It is pure:
// identical inputs give identical outputs. Totals never decrease, ActiveBridges and
// AverageBridgeSeconds stay within fixed bounds. A non-positive elapsed returns stats unchanged.
// Fractional transactions carry over to the following call, so many short steps add up to
// the same totals as one long step.
func Next(stats Stats, elapsed time.Duration, sample float64) Stats {
	if elapsed <= 0 {
		return stats
	}

	sample = clamp(sample, 0, math.Nextafter(1, 0))
	swing := sample - 0.5

	accrued := stats.pendingTransactions + elapsed.Seconds()*transactionsPerSecond*(0.5+sample)
	newTransactions := int64(math.Floor(accrued))

	next := stats
	next.pendingTransactions = accrued - float64(newTransactions)
	next.TotalTransactions += newTransactions
	next.TotalVolumeUSD += float64(newTransactions) * averageTicketUSD * (0.5 + sample)
	next.ActiveBridges = int64(clamp(float64(stats.ActiveBridges)+math.Round(swing*10), minActiveBridges, maxActiveBridges))
	next.AverageBridgeSeconds = clamp(stats.AverageBridgeSeconds+swing*4, minBridgeSeconds, maxBridgeSeconds)
	next.UpdatedAt = stats.UpdatedAt.Add(elapsed)

	return next
}

func clamp(v float64, lo float64, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
