package providers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Navitia handles the journey-API style stop_schedules endpoint.
type Navitia struct{}

type navitiaResponse struct {
	StopSchedules []navitiaStopSchedule `json:"stop_schedules"`
}

type navitiaStopSchedule struct {
	Route struct {
		Direction struct {
			Name string `json:"name"`
		} `json:"direction"`
	} `json:"route"`

	DateTimes []struct {
		DateTime      string `json:"date_time"`
		DataFreshness string `json:"data_freshness"`
	} `json:"date_times"`
}

const navitiaDateTimeFormat = "20060102T150405"

// Departures closer than this show the approaching sentinel instead of an
// absolute time.
const navitiaApproachingWindow = 60 * time.Second

func (Navitia) Index(stop transit.StopConfig) string {
	if stop.Station == "" {
		return ""
	}

	return fmt.Sprintf("navitia/%s/%s", stop.Station, stop.Destination)
}

func (n Navitia) Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error) {
	var response navitiaResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return transit.Update{}, err
	}

	if response.StopSchedules == nil {
		return transit.Update{}, nil
	}

	set := &transit.ScheduleSet{
		ID:         n.Index(stop),
		LastUpdate: now,
	}

	for _, stopSchedule := range response.StopSchedules {
		// Only the next departure per route is displayed
		if len(stopSchedule.DateTimes) == 0 {
			continue
		}
		first := stopSchedule.DateTimes[0]

		schedule := transit.Schedule{
			Destination: stopSchedule.Route.Direction.Name,
			Status:      transit.ScheduleStatusOnTime,
			TimeMode:    transit.TimeModeUndefined,
		}

		departure, err := time.ParseInLocation(navitiaDateTimeFormat, first.DateTime, now.Location())
		if err == nil {
			if departure.Sub(now) < navitiaApproachingWindow {
				schedule.Status = transit.ScheduleStatusApproaching
			} else {
				schedule.Time = &departure
				if first.DataFreshness == "realtime" {
					schedule.TimeMode = transit.TimeModeRealtime
				} else {
					schedule.TimeMode = transit.TimeModeTheorical
				}
			}
		} else {
			schedule.Status = transit.ScheduleStatusUndefined
		}

		set.Schedules = append(set.Schedules, schedule)
	}

	return transit.Update{Schedules: set}, nil
}
