package transit

import (
	"time"
)

// BikeStationSnapshot is one observation of a bike-share station. Snapshots
// accumulate into an append-only, time-bounded history per station; only a
// snapshot with a new LastUpdate is appended, duplicates are discarded.
type BikeStationSnapshot struct {
	Total      int       `groups:"basic" json:"total"`
	Bike       int       `groups:"basic" json:"bike"`
	Empty      int       `groups:"basic" json:"empty"`
	Name       string    `groups:"basic" json:"name"`
	LastUpdate time.Time `groups:"basic" json:"lastUpdate"`
}
