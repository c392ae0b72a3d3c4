package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/panel"
	"github.com/transitpanel/transitpanel/pkg/poller"
	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/store"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

func testServer(st *store.Store) Server {
	return Server{
		Store:  st,
		Poller: &poller.Poller{},
		Renderer: panel.Renderer{
			Registry: providers.NewRegistry(providers.NewDirectory(nil)),
			Catalog:  panel.NewCatalog(nil),
		},
	}
}

func TestGetVersion(t *testing.T) {
	app := testServer(store.New(nil)).newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/version", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetBikeHistoryWithoutHistoryLog(t *testing.T) {
	// A server over a store with no history log answers 404, not a panic
	app := testServer(store.New(nil)).newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bike/13007", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetBikeHistory(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)

	st := store.New(store.NewHistoryLog(10, time.Hour, nil))
	st.Apply(context.Background(), "velib/13007", transit.Update{
		Bike: &transit.BikeStationSnapshot{
			Total:      45,
			Bike:       33,
			Empty:      12,
			Name:       "13007 - LE BRUN",
			LastUpdate: now,
		},
	}, now)

	app := testServer(st).newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bike/13007", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetSchedulesUnknownIndex(t *testing.T) {
	app := testServer(store.New(nil)).newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/stops/bus/63/buffon/83", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
