package providers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

var trafficStop = transit.StopConfig{
	Type: transit.StopTypeTraffic,
	Line: transit.LineRef{Mode: "metros", Code: "4"},
}

func TestRouteStatusIndex(t *testing.T) {
	assert.Equal(t, "traffic/metros/4", RouteStatus{}.Index(trafficStop))

	incomplete := trafficStop
	incomplete.Line = transit.LineRef{}
	assert.Equal(t, "", RouteStatus{}.Index(incomplete))
}

func TestRouteStatusLevels(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)

	cases := map[int]transit.TrafficStatus{
		0:  transit.TrafficStatusOK,
		1:  transit.TrafficStatusOKWork,
		2:  transit.TrafficStatusKO,
		99: transit.TrafficStatusUnknown,
	}

	for level, expected := range cases {
		payload := []byte(fmt.Sprintf(`{"result":{"line":"4","level":%d,"title":"summary","message":"details"}}`, level))

		update, err := RouteStatus{}.Parse(trafficStop, payload, now)
		require.NoError(t, err)
		require.NotNil(t, update.Traffic)

		assert.Equal(t, expected, update.Traffic.Status, "level %d", level)
		assert.Equal(t, "4", update.Traffic.Line)
		assert.Equal(t, "summary", update.Traffic.Summary)
		assert.Equal(t, "details", update.Traffic.Message)
		assert.Equal(t, now, update.Traffic.LastUpdate)
	}
}

func TestRouteStatusMalformedPayload(t *testing.T) {
	update, err := RouteStatus{}.Parse(trafficStop, []byte(`null`), time.Now())
	require.NoError(t, err)
	assert.True(t, update.Empty())

	update, err = RouteStatus{}.Parse(trafficStop, []byte(`{}`), time.Now())
	require.NoError(t, err)
	assert.True(t, update.Empty())
}
