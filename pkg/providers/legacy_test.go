package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

var legacyStop = transit.StopConfig{
	Type:        transit.StopTypeBus,
	Line:        transit.LineRef{Code: "63"},
	Station:     "buffon",
	Destination: "83",
}

func TestLegacyIndex(t *testing.T) {
	assert.Equal(t, "bus/63/buffon/83", Legacy{}.Index(legacyStop))

	incomplete := legacyStop
	incomplete.Station = ""
	assert.Equal(t, "", Legacy{}.Index(incomplete))
}

func TestLegacyParseMinutesMessage(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 30, 500, time.UTC)
	payload := []byte(`{"result":{"schedules":[{"message":"4 mn","destination":"La Defense","code":"TLEO"}]}}`)

	update, err := Legacy{}.Parse(legacyStop, payload, now)
	require.NoError(t, err)
	require.NotNil(t, update.Schedules)
	require.Len(t, update.Schedules.Schedules, 1)

	schedule := update.Schedules.Schedules[0]
	assert.Equal(t, transit.ScheduleStatus(transit.ScheduleStatusOnTime), schedule.Status)
	assert.Equal(t, "La Defense", schedule.Destination)
	assert.Equal(t, "TLEO", schedule.Code)
	require.NotNil(t, schedule.Time)
	assert.Equal(t, time.Date(2017, 7, 16, 22, 4, 0, 0, time.UTC), *schedule.Time)
	assert.Equal(t, transit.TimeMode(transit.TimeModeRealtime), schedule.TimeMode)
}

func TestLegacyParseClockMessage(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)
	payload := []byte(`{"result":{"schedules":[{"message":"22:05","destination":"La Defense"}]}}`)

	update, err := Legacy{}.Parse(legacyStop, payload, now)
	require.NoError(t, err)

	schedule := update.Schedules.Schedules[0]
	assert.Equal(t, transit.ScheduleStatus(transit.ScheduleStatusOnTime), schedule.Status)
	require.NotNil(t, schedule.Time)
	assert.Equal(t, time.Date(2017, 7, 16, 22, 5, 0, 0, time.UTC), *schedule.Time)
}

func TestLegacyClockRolloverForRER(t *testing.T) {
	now := time.Date(2017, 7, 16, 23, 50, 0, 0, time.UTC)
	payload := []byte(`{"result":{"schedules":[{"message":"00:05","destination":"Poissy"}]}}`)

	rerStop := legacyStop
	rerStop.Type = transit.StopTypeRER

	update, err := Legacy{}.Parse(rerStop, payload, now)
	require.NoError(t, err)

	schedule := update.Schedules.Schedules[0]
	require.NotNil(t, schedule.Time)
	assert.Equal(t, time.Date(2017, 7, 17, 0, 5, 0, 0, time.UTC), *schedule.Time)

	// Buses never roll over, a past clock time stays on today's date
	update, err = Legacy{}.Parse(legacyStop, payload, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 7, 16, 0, 5, 0, 0, time.UTC), *update.Schedules.Schedules[0].Time)
}

func TestLegacyStatusTable(t *testing.T) {
	cases := map[string]transit.ScheduleStatus{
		"Train a l'approche":             transit.ScheduleStatusApproaching,
		"Train a quai":                   transit.ScheduleStatusAtPlatform,
		"Train à quai":                   transit.ScheduleStatusAtPlatform,
		"Train retarde":                  transit.ScheduleStatusDelayed,
		"4 mn":                           transit.ScheduleStatusOnTime,
		"22:05":                          transit.ScheduleStatusOnTime,
		"DEVIATION / ARRET NON DESSERVI": transit.ScheduleStatusSkipped,
		"Service partiel":                transit.ScheduleStatusUnknown,
		"":                               transit.ScheduleStatusUndefined,
	}

	for message, expected := range cases {
		assert.Equal(t, expected, legacyStatus(message), "message %q", message)
	}
}

func TestLegacyTrackAnnotation(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)
	payload := []byte(`{"result":{"schedules":[{"message":"22:05 Voie B","destination":"Poissy"}]}}`)

	update, err := Legacy{}.Parse(legacyStop, payload, now)
	require.NoError(t, err)

	schedule := update.Schedules.Schedules[0]
	assert.Equal(t, transit.ScheduleStatus(transit.ScheduleStatusOnTime), schedule.Status)
	assert.Equal(t, "Voie B", schedule.Info)
}

func TestLegacyMalformedPayload(t *testing.T) {
	now := time.Now()

	update, err := Legacy{}.Parse(legacyStop, []byte(`null`), now)
	require.NoError(t, err)
	assert.True(t, update.Empty())

	update, err = Legacy{}.Parse(legacyStop, []byte(`{"result":{}}`), now)
	require.NoError(t, err)
	assert.True(t, update.Empty())

	update, _ = Legacy{}.Parse(legacyStop, []byte(`{invalid`), now)
	assert.True(t, update.Empty())
}
