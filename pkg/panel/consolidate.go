package panel

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
	"github.com/transitpanel/transitpanel/pkg/util"
)

// ConsolidatedRow is one displayable schedule line. Rows are rebuilt from the
// stored ScheduleSet on every render and never persisted.
type ConsolidatedRow struct {
	Label           string
	DestinationText string
	StatusText      string
	DepartureText   string
	Opacity         float64
}

// Options is the display configuration of the consolidation pipeline.
type Options struct {
	MaximumEntries           int
	MaxLettersForDestination int
	MaxLettersForTime        int

	ConcatenateArrivals  bool
	ConvertToWaitingTime bool

	UpdateInterval     time.Duration
	OldUpdateThreshold time.Duration
	OldThreshold       float64
	OldUpdateOpacity   float64

	ShowLastUpdateTime bool
	ShowSecondsToNext  bool
}

// StalenessThreshold is the age past which displayed values are dimmed: the
// explicit override when configured, otherwise UpdateInterval scaled by the
// old-threshold factor.
func (o Options) StalenessThreshold() time.Duration {
	if o.OldUpdateThreshold > 0 {
		return o.OldUpdateThreshold
	}

	return time.Duration(float64(o.UpdateInterval) * (1 + o.OldThreshold))
}

// Consolidate turns one stop's schedule set into the ordered, deduplicated,
// staleness-annotated row list to display.
//
// Provider order is preserved; no sorting happens here. With
// ConcatenateArrivals enabled a schedule whose destination equals the
// immediately preceding emitted row's destination folds its departure text
// into that row instead of emitting a new one. A single forward pass with
// one-row lookback, so non-adjacent repeats of a destination stay separate.
func Consolidate(label string, set *transit.ScheduleSet, lastUpdate time.Time, now time.Time, opts Options, catalog *Catalog) []ConsolidatedRow {
	schedules := set.Schedules
	if opts.MaximumEntries > 0 && len(schedules) > opts.MaximumEntries {
		schedules = schedules[:opts.MaximumEntries]
	}

	// The staleness clock is the stop's single lastUpdate, evaluated once
	// for every row.
	opacity := 1.0
	if now.Sub(lastUpdate) > opts.StalenessThreshold() {
		opacity = opts.OldUpdateOpacity
	}

	var rows []ConsolidatedRow
	lastDestination := ""

	for _, schedule := range schedules {
		departure := departureText(schedule, now, opts, catalog)

		if opts.ConcatenateArrivals && len(rows) > 0 && schedule.Destination == lastDestination {
			rows[len(rows)-1].DepartureText += " / " + departure
			continue
		}

		rows = append(rows, ConsolidatedRow{
			Label:           label,
			DestinationText: schedule.Destination,
			StatusText:      statusText(schedule, catalog),
			DepartureText:   departure,
			Opacity:         opacity,
		})
		lastDestination = schedule.Destination
	}

	for i := range rows {
		rows[i].DestinationText = util.TrimString(rows[i].DestinationText, opts.MaxLettersForDestination)
		rows[i].DepartureText = util.TrimString(rows[i].DepartureText, opts.MaxLettersForTime)
	}

	return rows
}

func departureText(schedule transit.Schedule, now time.Time, opts Options, catalog *Catalog) string {
	if schedule.Time == nil {
		return catalog.NotAvailable()
	}

	if opts.ConvertToWaitingTime {
		minutes := int(math.Floor(schedule.Time.Sub(now).Seconds() / 60))
		if minutes < 0 {
			return catalog.NotAvailable()
		}

		return fmt.Sprintf("%d %s", minutes, catalog.Minutes())
	}

	return schedule.Time.Format("15:04")
}

func statusText(schedule transit.Schedule, catalog *Catalog) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", schedule.Code, catalog.StatusText(schedule.Status)))
}
