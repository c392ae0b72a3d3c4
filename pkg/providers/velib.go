package providers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Velib handles the bike-share station API. The payload is a single record
// whose fields map 1:1 onto the snapshot model.
type Velib struct{}

type velibRecord struct {
	Name                string `json:"name"`
	BikeStands          int    `json:"bike_stands"`
	AvailableBikeStands int    `json:"available_bike_stands"`
	AvailableBikes      int    `json:"available_bikes"`
	LastUpdate          int64  `json:"last_update"`
}

func (Velib) Index(stop transit.StopConfig) string {
	if stop.Station == "" {
		return ""
	}

	return fmt.Sprintf("velib/%s", stop.Station)
}

func (v Velib) Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error) {
	var record *velibRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return transit.Update{}, err
	}

	if record == nil || record.Name == "" {
		return transit.Update{}, nil
	}

	lastUpdate := now
	if record.LastUpdate != 0 {
		lastUpdate = time.UnixMilli(record.LastUpdate).In(now.Location())
	}

	return transit.Update{Bike: &transit.BikeStationSnapshot{
		Total:      record.BikeStands,
		Empty:      record.AvailableBikeStands,
		Bike:       record.AvailableBikes,
		Name:       record.Name,
		LastUpdate: lastUpdate,
	}}, nil
}
