package providers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// RouteStatus handles the line status endpoint (numeric disruption levels).
type RouteStatus struct{}

type routeStatusResponse struct {
	Result *struct {
		Line    string `json:"line"`
		Level   int    `json:"level"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"result"`
}

var routeStatusLevels = map[int]transit.TrafficStatus{
	0: transit.TrafficStatusOK,
	1: transit.TrafficStatusOKWork,
	2: transit.TrafficStatusKO,
}

func (RouteStatus) Index(stop transit.StopConfig) string {
	if stop.Line.Code == "" {
		return ""
	}

	mode := stop.Line.Mode
	if mode == "" {
		mode = string(stop.Type)
	}

	return fmt.Sprintf("traffic/%s/%s", mode, stop.Line.Code)
}

func (r RouteStatus) Parse(stop transit.StopConfig, payload []byte, now time.Time) (transit.Update, error) {
	var response routeStatusResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return transit.Update{}, err
	}

	if response.Result == nil {
		return transit.Update{}, nil
	}

	status, found := routeStatusLevels[response.Result.Level]
	if !found {
		status = transit.TrafficStatusUnknown
	}

	return transit.Update{Traffic: &transit.TrafficInfo{
		ID:         r.Index(stop),
		LastUpdate: now,
		Line:       response.Result.Line,
		Status:     status,
		Summary:    response.Result.Title,
		Message:    response.Result.Message,
	}}, nil
}
