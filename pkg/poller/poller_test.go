package poller

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/config"
	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/store"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

type recordingSink struct {
	mu     sync.Mutex
	events []transit.Event
}

func (r *recordingSink) Publish(event transit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingSink) byType(eventType transit.EventType) []transit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []transit.Event
	for _, event := range r.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}

	return matched
}

func cyclePoller(t *testing.T, handler http.Handler, stops []transit.StopConfig) (*Poller, *store.Store, *recordingSink) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.AppConfig{
		UpdateInterval:    config.Duration(time.Minute),
		InitialRetryDelay: config.Duration(10 * time.Second),
		APIs: config.APIConfig{
			Legacy:  config.ProviderConfig{BaseURL: server.URL},
			Traffic: config.ProviderConfig{BaseURL: server.URL},
		},
		Stops: stops,
	}

	st := store.New(nil)
	sink := &recordingSink{}
	p := New(cfg, st, providers.NewRegistry(providers.NewDirectory(nil)), sink)
	p.Client = server.Client()

	return p, st, sink
}

func TestRunCycleStoresAndPublishes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/bus/63/buffon/83", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"schedules":[{"destination":"Gare de Lyon","message":"3 mn"}]}}`))
	})
	mux.HandleFunc("/traffic/metros/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"line":"1","level":0,"title":"Trafic normal","message":""}}`))
	})

	stops := []transit.StopConfig{
		{Type: transit.StopTypeBus, Line: transit.LineRef{Code: "63"}, Station: "buffon", Destination: "83"},
		{Type: transit.StopTypeTraffic, Line: transit.LineRef{Mode: "metros", Code: "1"}},
	}

	p, st, sink := cyclePoller(t, mux, stops)

	p.RunCycle()

	assert.True(t, st.Loaded())

	set, _, found := st.Schedules("bus/63/buffon/83")
	require.True(t, found)
	require.Len(t, set.Schedules, 1)
	assert.Equal(t, "Gare de Lyon", set.Schedules[0].Destination)

	info, found := st.Traffic("traffic/metros/1")
	require.True(t, found)
	assert.Equal(t, transit.TrafficStatus(transit.TrafficStatusOK), info.Status)

	assert.Len(t, sink.byType(transit.EventTypeScheduleUpdated), 1)
	assert.Len(t, sink.byType(transit.EventTypeTrafficUpdated), 1)
	assert.Len(t, sink.byType(transit.EventTypePollCycleComplete), 1)
}

func TestRunCycleFailureAdvancesStalenessClock(t *testing.T) {
	var mu sync.Mutex
	failing := false

	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/bus/63/buffon/83", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Write([]byte(`{"result":{"schedules":[{"destination":"Gare de Lyon","message":"3 mn"}]}}`))
	})

	stops := []transit.StopConfig{
		{Type: transit.StopTypeBus, Line: transit.LineRef{Code: "63"}, Station: "buffon", Destination: "83"},
	}

	p, st, _ := cyclePoller(t, mux, stops)

	p.RunCycle()
	firstClock := st.LastUpdate("bus/63/buffon/83")

	mu.Lock()
	failing = true
	mu.Unlock()

	p.RunCycle()

	// Last-known-good data survives the failed cycle
	set, lastUpdate, found := st.Schedules("bus/63/buffon/83")
	require.True(t, found)
	assert.Equal(t, "Gare de Lyon", set.Schedules[0].Destination)
	assert.True(t, lastUpdate.After(firstClock))
	assert.True(t, st.Loaded())
}

func TestRunCycleGarbageBodyCountsAsResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/bus/63/buffon/83", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":true}`))
	})

	stops := []transit.StopConfig{
		{Type: transit.StopTypeBus, Line: transit.LineRef{Code: "63"}, Station: "buffon", Destination: "83"},
	}

	p, st, sink := cyclePoller(t, mux, stops)

	p.RunCycle()

	// A 200 with a useless body still flips the scheduler to the normal
	// interval; only a missing response keeps the initial retry delay
	assert.True(t, st.Loaded())

	_, _, found := st.Schedules("bus/63/buffon/83")
	assert.False(t, found)
	assert.Empty(t, sink.byType(transit.EventTypeScheduleUpdated))
}

func TestRunCycleTransportFailureKeepsInitialDelay(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/bus/63/buffon/83", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	stops := []transit.StopConfig{
		{Type: transit.StopTypeBus, Line: transit.LineRef{Code: "63"}, Station: "buffon", Destination: "83"},
	}

	p, st, _ := cyclePoller(t, mux, stops)

	p.RunCycle()

	assert.False(t, st.Loaded())
	assert.False(t, st.LastUpdate("bus/63/buffon/83").IsZero())
}

func TestRunCycleSkipsUnresolvedStops(t *testing.T) {
	mux := http.NewServeMux()

	stops := []transit.StopConfig{
		// No UIC codes resolved yet, so this stop has no identity
		{Type: transit.StopTypeRail, Station: "La Defense"},
	}

	p, st, sink := cyclePoller(t, mux, stops)

	p.RunCycle()

	assert.False(t, st.Loaded())
	assert.Len(t, sink.byType(transit.EventTypePollCycleComplete), 1)
}
