package transit

import (
	"time"
)

// ScheduleStatus is the normalised state of one upcoming (or past) transit event,
// regardless of which provider reported it.
type ScheduleStatus string

const (
	ScheduleStatusApproaching ScheduleStatus = "APPROACHING"
	ScheduleStatusAtPlatform                 = "AT_PLATFORM"
	ScheduleStatusOnTime                     = "ON_TIME"
	ScheduleStatusDelayed                    = "DELAYED"
	ScheduleStatusDeleted                    = "DELETED"
	ScheduleStatusTerminal                   = "TERMINAL"
	ScheduleStatusSkipped                    = "SKIPPED"
	ScheduleStatusUnknown                    = "UNKNOWN"
	ScheduleStatusUndefined                  = "UNDEFINED"
)

// TimeMode records whether a schedule time came from a realtime feed or a
// theoretical timetable.
type TimeMode string

const (
	TimeModeRealtime  TimeMode = "REALTIME"
	TimeModeTheorical          = "THEORICAL"
	TimeModeUndefined          = "UNDEFINED"
)

// Schedule is one normalised transit event.
//
// Either Time holds a parseable absolute timestamp, or Time is nil and
// TimeMode is UNDEFINED.
type Schedule struct {
	Destination string         `groups:"basic" json:"destination"`
	Status      ScheduleStatus `groups:"basic" json:"status"`
	Time        *time.Time     `groups:"basic" json:"time"`
	TimeMode    TimeMode       `groups:"basic" json:"timeMode"`

	Code string `groups:"basic" json:"code,omitempty"`
	Info string `groups:"basic" json:"info,omitempty"`
}

// ScheduleSet is the full set of schedules for one stop-index. It is replaced
// wholesale on every successful poll and never mutated in place afterwards.
type ScheduleSet struct {
	ID         string     `groups:"basic" json:"id"`
	LastUpdate time.Time  `groups:"basic" json:"lastUpdate"`
	Schedules  []Schedule `groups:"basic" json:"schedules"`
}
