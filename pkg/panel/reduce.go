package panel

import (
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// DestinationGroup collects every time of one contiguous run of schedules
// sharing a destination.
type DestinationGroup struct {
	Destination string
	Times       []*time.Time
}

// ReduceByDestination groups schedules into destination buckets for the
// grouped display mode. Grouping is strictly by contiguous run, matching the
// provider's natural ordering: a new bucket starts whenever the destination
// changes from the previous raw record, and non-adjacent repeats of a
// destination are never merged. This is deliberately a different granularity
// from the one-row-lookback folding in Consolidate.
func ReduceByDestination(schedules []transit.Schedule) []DestinationGroup {
	var groups []DestinationGroup

	for _, schedule := range schedules {
		if len(groups) == 0 || groups[len(groups)-1].Destination != schedule.Destination {
			groups = append(groups, DestinationGroup{Destination: schedule.Destination})
		}

		last := len(groups) - 1
		groups[last].Times = append(groups[last].Times, schedule.Time)
	}

	return groups
}
