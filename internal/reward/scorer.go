// Package reward maps nightly sleep totals to points and milestone credits.
package reward

import (
	"math"

	"github.com/gobigbed/bigbed/internal/domain"
)

// DefaultMilestoneCap is the points required per credit.
const DefaultMilestoneCap = 7890

// PointsForHours awards ten points per hour of sleep, rounded.
func PointsForHours(hours float64) int {
	return int(math.Round(hours * 10.0))
}

// TotalPoints sums the points over a set of nights.
func TotalPoints(days []domain.SleepDay) int {
	total := 0
	for _, d := range days {
		total += PointsForHours(d.Hours)
	}
	return total
}

// Milestone describes progress against a point cap.
type Milestone struct {
	TotalPoints   int
	Credits       int
	CycleProgress float64
}

// MilestoneFor computes completed credits and progress through the current
// cycle. A non-positive cap yields zero credits and progress.
func MilestoneFor(totalPoints, cap int) Milestone {
	m := Milestone{TotalPoints: totalPoints}
	if cap <= 0 {
		return m
	}
	m.Credits = totalPoints / cap
	m.CycleProgress = float64(totalPoints%cap) / float64(cap)
	return m
}
