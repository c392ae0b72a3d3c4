package transit

import (
	"time"
)

type TrafficStatus string

const (
	TrafficStatusOK      TrafficStatus = "OK"
	TrafficStatusOKWork                = "OK_WORK"
	TrafficStatusKO                    = "KO"
	TrafficStatusUnknown               = "UNKNOWN"
)

// TrafficInfo is the normalised line status record produced by the
// route-status provider.
type TrafficInfo struct {
	ID         string        `groups:"basic" json:"id"`
	LastUpdate time.Time     `groups:"basic" json:"lastUpdate"`
	Line       string        `groups:"basic" json:"line"`
	Status     TrafficStatus `groups:"basic" json:"status"`
	Summary    string        `groups:"basic" json:"summary"`
	Message    string        `groups:"basic" json:"message"`
}
