package poller

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const requestRetryInterval = 2 * time.Second
const requestMaxRetries = 2

// requestFor builds the provider URL and Authorization header value for one
// stop. Station and line values are expected to already be URL-safe.
func (p *Poller) requestFor(stop transit.StopConfig) (string, string) {
	apis := p.Config.APIs

	switch stop.Type {
	case transit.StopTypeBus, transit.StopTypeMetro, transit.StopTypeRER:
		if apis.Legacy.BaseURL == "" {
			return "", ""
		}
		return fmt.Sprintf("%s/schedules/%s/%s/%s/%s",
			strings.TrimSuffix(apis.Legacy.BaseURL, "/"),
			stop.Type, stop.Line.Code, stop.Station, stop.Destination), authorizationValue(apis.Legacy.Token)

	case transit.StopTypeTraffic:
		if apis.Traffic.BaseURL == "" {
			return "", ""
		}
		// Same fallback as the traffic adapter's Index so URL and
		// stop-index always name the same mode
		mode := stop.Line.Mode
		if mode == "" {
			mode = string(stop.Type)
		}
		return fmt.Sprintf("%s/traffic/%s/%s",
			strings.TrimSuffix(apis.Traffic.BaseURL, "/"),
			mode, stop.Line.Code), authorizationValue(apis.Traffic.Token)

	case transit.StopTypeRail:
		if apis.Rail.BaseURL == "" || stop.UIC == nil {
			return "", ""
		}
		return fmt.Sprintf("%s/gare/%s/depart/",
			strings.TrimSuffix(apis.Rail.BaseURL, "/"),
			stop.UIC.Station), authorizationValue(apis.Rail.Token)

	case transit.StopTypeNavitia:
		if apis.Navitia.BaseURL == "" {
			return "", ""
		}
		return fmt.Sprintf("%s/stop_areas/%s/stop_schedules",
			strings.TrimSuffix(apis.Navitia.BaseURL, "/"),
			stop.Station), authorizationValue(apis.Navitia.Token)

	case transit.StopTypeVelib:
		if apis.Velib.BaseURL == "" {
			return "", ""
		}
		return fmt.Sprintf("%s/stations/%s",
			strings.TrimSuffix(apis.Velib.BaseURL, "/"),
			stop.Station), authorizationValue(apis.Velib.Token)
	}

	return "", ""
}

// authorizationValue forwards a pre-formatted scheme string ("Basic xxxx")
// untouched and wraps a bare token as a bearer token.
func authorizationValue(token string) string {
	if token == "" {
		return ""
	}

	if strings.Contains(token, " ") {
		return token
	}

	return "Bearer " + token
}

// fetch GETs the URL, retrying at a constant interval within the cycle.
func (p *Poller) fetch(requestURL string, authorization string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequest("GET", requestURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req.Header.Set("Accept", "application/json;charset=utf-8")
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}

		resp, err := p.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	}

	return backoff.RetryWithData(operation, backoff.WithMaxRetries(backoff.NewConstantBackOff(requestRetryInterval), requestMaxRetries))
}
