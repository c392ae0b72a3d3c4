package providers

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
	"github.com/transitpanel/transitpanel/pkg/util"
	"golang.org/x/net/html/charset"
)

// RailXML handles the rail operator's XML departure feed. Terminus codes are
// resolved to display names through the station directory.
type RailXML struct {
	Directory *Directory
}

type railPassages struct {
	XMLName xml.Name    `xml:"passages"`
	Gare    string      `xml:"gare,attr"`
	Trains  []railTrain `xml:"train"`
}

type railTrain struct {
	Date     railTrainDate `xml:"date"`
	Mission  string        `xml:"miss"`
	Number   string        `xml:"num"`
	Terminus string        `xml:"term"`
	Etat     string        `xml:"etat"`
}

type railTrainDate struct {
	Mode  string `xml:"mode,attr"`
	Value string `xml:",chardata"`
}

const railDateFormat = "02/01/2006 15:04"

var railStatusTable = map[string]transit.ScheduleStatus{
	"Retardé":  transit.ScheduleStatusDelayed,
	"Retarde":  transit.ScheduleStatusDelayed,
	"Supprimé": transit.ScheduleStatusDeleted,
	"Supprime": transit.ScheduleStatusDeleted,
}

func (RailXML) Index(stop transit.StopConfig) string {
	if stop.UIC == nil || stop.UIC.Station == "" {
		return ""
	}

	return fmt.Sprintf("gare/%s/depart", stop.UIC.Station)
}

func (r RailXML) Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error) {
	decoder := xml.NewDecoder(bytes.NewReader(payload))
	decoder.CharsetReader = charset.NewReaderLabel

	var passages railPassages
	if err := decoder.Decode(&passages); err != nil {
		return transit.Update{}, err
	}

	// Trains heading anywhere other than the configured destination are
	// excluded entirely
	if stop.UIC != nil && stop.UIC.Destination != "" {
		util.InPlaceFilter(&passages.Trains, func(train railTrain) bool {
			return train.Terminus == stop.UIC.Destination
		})
	}

	set := &transit.ScheduleSet{
		ID:         r.Index(stop),
		LastUpdate: now,
	}

	for _, train := range passages.Trains {
		schedule := transit.Schedule{
			Destination: r.Directory.StationName(train.Terminus),
			Code:        train.Mission,
			Status:      railStatus(train.Etat),
			TimeMode:    transit.TimeModeUndefined,
		}

		if departure, err := time.ParseInLocation(railDateFormat, train.Date.Value, now.Location()); err == nil {
			schedule.Time = &departure
			if train.Date.Mode == "R" {
				schedule.TimeMode = transit.TimeModeRealtime
			} else {
				schedule.TimeMode = transit.TimeModeTheorical
			}
		}

		set.Schedules = append(set.Schedules, schedule)
	}

	return transit.Update{Schedules: set}, nil
}

func railStatus(etat string) transit.ScheduleStatus {
	if etat == "" {
		return transit.ScheduleStatusOnTime
	}

	if status, found := railStatusTable[etat]; found {
		return status
	}

	return transit.ScheduleStatusUnknown
}
