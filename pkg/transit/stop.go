package transit

import (
	"fmt"
)

// StopType selects which provider adapter and index-builder apply to a stop.
type StopType string

const (
	// Legacy schedule endpoints (plain-text message + destination)
	StopTypeBus   StopType = "bus"
	StopTypeMetro          = "metro"
	StopTypeRER            = "rer"

	// Route-status endpoint
	StopTypeTraffic = "traffic"

	// Rail operator XML departure feed
	StopTypeRail = "rail"

	// Navitia style journey API
	StopTypeNavitia = "navitia"

	// Bike-share station API
	StopTypeVelib = "velib"
)

// LineRef identifies a line either by a plain code ("72") or by a
// [mode, code] pair (["metros", "4"]). Both YAML shapes are accepted.
type LineRef struct {
	Mode string
	Code string
}

func (l *LineRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		l.Code = plain
		return nil
	}

	var pair []string
	if err := unmarshal(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line must be a string or a [mode, code] pair, got %d elements", len(pair))
	}

	l.Mode = pair[0]
	l.Code = pair[1]

	return nil
}

func (l LineRef) String() string {
	if l.Mode == "" {
		return l.Code
	}

	return fmt.Sprintf("%s/%s", l.Mode, l.Code)
}

// UICCodes are the resolved rail-station identifiers required before the rail
// XML feed can be queried for a stop.
type UICCodes struct {
	Station     string `yaml:"station" json:"station"`
	Destination string `yaml:"destination" json:"destination"`
}

// StopConfig identifies one physical stop/line the operator wants displayed.
type StopConfig struct {
	Type        StopType  `yaml:"type" json:"type" validate:"required"`
	Line        LineRef   `yaml:"line" json:"line"`
	Station     string    `yaml:"station" json:"station"`
	Destination string    `yaml:"destination" json:"destination"`
	Label       string    `yaml:"label" json:"label"`
	UIC         *UICCodes `yaml:"uic" json:"uic,omitempty"`
	Order       int       `yaml:"order" json:"order"`
}

// DisplayLabel is the header text for the stop's panel block.
func (s StopConfig) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}

	if s.Station != "" {
		return fmt.Sprintf("%s %s", s.Line.Code, s.Station)
	}

	return s.Line.String()
}
