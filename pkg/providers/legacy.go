package providers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Legacy handles the plain-text schedule endpoints where each entry is a
// free-form message ("4 mn", "22:05", "Train a quai", ...) plus a destination.
type Legacy struct{}

type legacyResponse struct {
	Result struct {
		Schedules []legacySchedule `json:"schedules"`
	} `json:"result"`
}

type legacySchedule struct {
	Message     string `json:"message"`
	Destination string `json:"destination"`
	Code        string `json:"code"`
}

var (
	legacyMinutesRegexp = regexp.MustCompile(`^(\d+) mn`)
	legacyClockRegexp   = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)
	legacyTrackRegexp   = regexp.MustCompile(`(?i)\bvoie\s+\S+`)
	legacyNoticeRegexp  = regexp.MustCompile(`^[^a-z]*$`)
)

var legacyStatusTable = map[string]transit.ScheduleStatus{
	"Train a l'approche": transit.ScheduleStatusApproaching,
	"Train à l'approche": transit.ScheduleStatusApproaching,
	"Train a quai":       transit.ScheduleStatusAtPlatform,
	"Train à quai":       transit.ScheduleStatusAtPlatform,
	"Train retarde":      transit.ScheduleStatusDelayed,
	"Train retardé":      transit.ScheduleStatusDelayed,
	"Terminus":           transit.ScheduleStatusTerminal,
}

func (Legacy) Index(stop transit.StopConfig) string {
	if stop.Line.Code == "" || stop.Station == "" {
		return ""
	}

	return fmt.Sprintf("%s/%s/%s/%s", stop.Type, stop.Line.Code, stop.Station, stop.Destination)
}

func (l Legacy) Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error) {
	var response legacyResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return transit.Update{}, err
	}

	if response.Result.Schedules == nil {
		return transit.Update{}, nil
	}

	set := &transit.ScheduleSet{
		ID:         l.Index(stop),
		LastUpdate: now,
	}

	// RER departures are absolute clock times that may refer to just after
	// midnight, so a time earlier than now rolls over to tomorrow.
	rollover := stop.Type == transit.StopTypeRER

	for _, entry := range response.Result.Schedules {
		schedule := transit.Schedule{
			Destination: entry.Destination,
			Code:        entry.Code,
			Status:      legacyStatus(entry.Message),
			TimeMode:    transit.TimeModeUndefined,
		}

		if departure, ok := legacyDepartureTime(entry.Message, now, rollover); ok {
			schedule.Time = &departure
			schedule.TimeMode = transit.TimeModeRealtime
		}

		if track := legacyTrackRegexp.FindString(entry.Message); track != "" {
			schedule.Info = track
		}

		set.Schedules = append(set.Schedules, schedule)
	}

	return transit.Update{Schedules: set}, nil
}

// legacyStatus derives the normalised status from the raw message text. A
// message that is purely a time is ON_TIME; known phrases map through the
// status table; remaining free text is UNKNOWN when it still reads like a
// schedule annotation, and SKIPPED for service notices (all-caps banners such
// as "DEVIATION / ARRET NON DESSERVI").
func legacyStatus(message string) transit.ScheduleStatus {
	message = strings.TrimSpace(message)

	if message == "" {
		return transit.ScheduleStatusUndefined
	}

	if legacyMinutesRegexp.MatchString(message) || legacyClockRegexp.MatchString(message) {
		return transit.ScheduleStatusOnTime
	}

	if status, found := legacyStatusTable[message]; found {
		return status
	}

	if legacyNoticeRegexp.MatchString(message) {
		return transit.ScheduleStatusSkipped
	}

	return transit.ScheduleStatusUnknown
}

// legacyDepartureTime computes the absolute departure time of a message,
// either "N mn" relative to now or an "HH:mm" clock time on today's date.
// Seconds and below are zeroed.
func legacyDepartureTime(message string, now time.Time, rollover bool) (time.Time, bool) {
	message = strings.TrimSpace(message)

	if match := legacyMinutesRegexp.FindStringSubmatch(message); match != nil {
		minutes, _ := strconv.Atoi(match[1])

		departure := now.Add(time.Duration(minutes) * time.Minute)

		return departure.Truncate(time.Minute), true
	}

	if match := legacyClockRegexp.FindStringSubmatch(message); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])

		departure := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

		if rollover && departure.Before(now) {
			departure = departure.AddDate(0, 0, 1)
		}

		return departure, true
	}

	return time.Time{}, false
}
