package transit

import (
	"time"
)

// EventType is the fixed notification vocabulary emitted towards the
// presentation layer.
type EventType string

const (
	EventTypeScheduleUpdated   EventType = "ScheduleUpdated"
	EventTypeTrafficUpdated              = "TrafficUpdated"
	EventTypeBikeSnapshotAdded           = "BikeSnapshotAdded"
	EventTypePollCycleComplete           = "PollCycleComplete"
)

// Event carries one notification plus the normalised record it refers to.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	StopID    string      `json:"stopId,omitempty"`
	Body      interface{} `json:"body,omitempty"`
}
