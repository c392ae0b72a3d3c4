package providers

import (
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Adapter converts one provider's raw payload into the common model.
//
// Index returns the deterministic key under which the stop's data is stored
// and routed to its display slot, or "" when the stop is missing a required
// field (an unresolved rail stop for example) and must be skipped.
//
// Parse never panics on malformed input: it returns a zero Update (plus the
// parse error for logging) and the caller keeps whatever it had before. The
// reference time is passed explicitly so relative provider times ("3 mn")
// stay deterministic under test.
type Adapter interface {
	Index(stop transit.StopConfig) string
	Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error)
}

// Registry hands out the adapter responsible for a stop type.
type Registry struct {
	directory *Directory
}

func NewRegistry(directory *Directory) *Registry {
	return &Registry{directory: directory}
}

func (r *Registry) For(stopType transit.StopType) Adapter {
	switch stopType {
	case transit.StopTypeBus, transit.StopTypeMetro, transit.StopTypeRER:
		return Legacy{}
	case transit.StopTypeTraffic:
		return RouteStatus{}
	case transit.StopTypeRail:
		return RailXML{Directory: r.directory}
	case transit.StopTypeNavitia:
		return Navitia{}
	case transit.StopTypeVelib:
		return Velib{}
	}

	return nil
}
