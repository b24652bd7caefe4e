// Package schedule computes contribution-cycle boundaries for a group.
package schedule

import (
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
)

// CycleAt returns the cycle active at now for a group that starts at start
// with the given cycle duration. Before start the returned cycle has index -1
// and zero boundaries. Cycles are half-open intervals
// [start+i*d, start+(i+1)*d) beginning at index 0.
func CycleAt(start time.Time, duration time.Duration, now time.Time) model.Cycle {
	if duration <= 0 || now.Before(start) {
		return model.Cycle{Index: -1}
	}

	index := int64(now.Sub(start) / duration)
	cycleStart := start.Add(time.Duration(index) * duration)
	return model.Cycle{
		Index: index,
		Start: cycleStart,
		End:   cycleStart.Add(duration),
	}
}

// CycleForGroup resolves the group's current cycle and stamps the due amount.
func CycleForGroup(g model.Group, now time.Time) model.Cycle {
	c := CycleAt(g.StartAt, g.CycleDuration, now)
	if !c.NotStarted() {
		c.DueAmount = g.ContributionAmount
	}
	return c
}
