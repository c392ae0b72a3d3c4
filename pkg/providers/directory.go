package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

// DirectoryStation is one row of the rail operator's station directory CSV.
type DirectoryStation struct {
	UIC  string `csv:"uic"`
	Name string `csv:"name"`
}

// Directory maps between station names and UIC codes. Rail stops cannot be
// polled until their UIC codes have been resolved against it.
type Directory struct {
	byUIC  map[string]DirectoryStation
	byName map[string]DirectoryStation

	// resolutions survives restarts so the directory download can be
	// skipped when every configured stop hits the cache.
	resolutions *cache.Cache[string]
}

func NewDirectory(resolutions *cache.Cache[string]) *Directory {
	return &Directory{
		byUIC:       map[string]DirectoryStation{},
		byName:      map[string]DirectoryStation{},
		resolutions: resolutions,
	}
}

// Load reads the station directory CSV.
func (d *Directory) Load(reader io.Reader) error {
	var stations []DirectoryStation
	if err := gocsv.Unmarshal(reader, &stations); err != nil {
		return err
	}

	for _, station := range stations {
		d.byUIC[station.UIC] = station
		d.byName[normaliseStationName(station.Name)] = station
	}

	log.Info().Int("stations", len(stations)).Msg("Loaded station directory")

	return nil
}

// Download fetches and loads the station directory CSV from the configured URL.
func (d *Directory) Download(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("station directory returned status %d", resp.StatusCode)
	}

	return d.Load(resp.Body)
}

// StationName resolves a raw terminus code to its display name. Unknown codes
// fall back to the code itself so a row is never rendered nameless.
func (d *Directory) StationName(uic string) string {
	if station, found := d.byUIC[uic]; found {
		return station.Name
	}

	return uic
}

// ResolveUIC looks a station name up in the directory, consulting the
// resolution cache first.
func (d *Directory) ResolveUIC(ctx context.Context, name string) (string, error) {
	key := "uic/" + normaliseStationName(name)

	if d.resolutions != nil {
		if uic, err := d.resolutions.Get(ctx, key); err == nil && uic != "" {
			return uic, nil
		}
	}

	station, found := d.byName[normaliseStationName(name)]
	if !found {
		return "", fmt.Errorf("station %q not found in directory", name)
	}

	if d.resolutions != nil {
		if err := d.resolutions.Set(ctx, key, station.UIC); err != nil {
			log.Debug().Err(err).Str("station", name).Msg("Failed to cache UIC resolution")
		}
	}

	return station.UIC, nil
}

// ResolveStop fills in the UIC codes of a rail stop from its station and
// destination names. Stops of other types pass through untouched.
func (d *Directory) ResolveStop(ctx context.Context, stop *transit.StopConfig) error {
	if stop.Type != transit.StopTypeRail || stop.UIC != nil {
		return nil
	}

	stationUIC, err := d.ResolveUIC(ctx, stop.Station)
	if err != nil {
		return err
	}

	uic := &transit.UICCodes{Station: stationUIC}

	if stop.Destination != "" {
		destinationUIC, err := d.ResolveUIC(ctx, stop.Destination)
		if err != nil {
			return err
		}
		uic.Destination = destinationUIC
	}

	stop.UIC = uic

	return nil
}

func normaliseStationName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
