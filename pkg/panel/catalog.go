package panel

import (
	"github.com/transitpanel/transitpanel/pkg/transit"
)

// statusTranslationKeys maps a normalised status to its display message key.
// Statuses without an entry fall back to the not-available label.
var statusTranslationKeys = map[transit.ScheduleStatus]string{
	transit.ScheduleStatusApproaching: "approaching",
	transit.ScheduleStatusAtPlatform:  "atPlatform",
	transit.ScheduleStatusOnTime:      "onTime",
	transit.ScheduleStatusDelayed:     "delayed",
	transit.ScheduleStatusDeleted:     "deleted",
	transit.ScheduleStatusTerminal:    "terminal",
}

var trafficTranslationKeys = map[transit.TrafficStatus]string{
	transit.TrafficStatusOK:     "trafficOK",
	transit.TrafficStatusOKWork: "trafficOKWork",
	transit.TrafficStatusKO:     "trafficKO",
}

var defaultTranslations = map[string]string{
	"notAvailable": "N/A",
	"minutes":      "minutes",
	"loading":      "Loading...",

	"approaching": "A l'approche",
	"atPlatform":  "A quai",
	"onTime":      "",
	"delayed":     "Retardé",
	"deleted":     "Supprimé",
	"terminal":    "Terminus",

	"trafficOK":     "Trafic normal",
	"trafficOKWork": "Travaux",
	"trafficKO":     "Trafic perturbé",

	"bikes": "vélos",
	"slots": "places",
}

// Catalog resolves display message keys to localized strings. Operator
// overrides win over the built-in defaults.
type Catalog struct {
	overrides map[string]string
}

func NewCatalog(overrides map[string]string) *Catalog {
	return &Catalog{overrides: overrides}
}

func (c *Catalog) Translate(key string) (string, bool) {
	if c.overrides != nil {
		if value, found := c.overrides[key]; found {
			return value, true
		}
	}

	value, found := defaultTranslations[key]

	return value, found
}

func (c *Catalog) NotAvailable() string {
	label, _ := c.Translate("notAvailable")
	return label
}

func (c *Catalog) Minutes() string {
	unit, _ := c.Translate("minutes")
	return unit
}

// StatusText returns the translated status label, falling back to the
// not-available label for statuses with no mapped translation key.
func (c *Catalog) StatusText(status transit.ScheduleStatus) string {
	key, found := statusTranslationKeys[status]
	if !found {
		return c.NotAvailable()
	}

	label, found := c.Translate(key)
	if !found {
		return c.NotAvailable()
	}

	return label
}

func (c *Catalog) TrafficText(status transit.TrafficStatus) string {
	key, found := trafficTranslationKeys[status]
	if !found {
		return c.NotAvailable()
	}

	label, _ := c.Translate(key)

	return label
}
