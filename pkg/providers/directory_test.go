package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

func TestDirectoryLookups(t *testing.T) {
	directory := NewDirectory(nil)
	err := directory.Load(strings.NewReader("uic,name\n87384008,Versailles Rive Droite\n87393009,La Defense\n"))
	require.NoError(t, err)

	assert.Equal(t, "La Defense", directory.StationName("87393009"))
	assert.Equal(t, "87000000", directory.StationName("87000000"))

	uic, err := directory.ResolveUIC(context.Background(), "la defense")
	require.NoError(t, err)
	assert.Equal(t, "87393009", uic)

	_, err = directory.ResolveUIC(context.Background(), "Atlantis")
	assert.Error(t, err)
}

func TestDirectoryResolveStop(t *testing.T) {
	directory := NewDirectory(nil)
	err := directory.Load(strings.NewReader("uic,name\n87384008,Versailles Rive Droite\n87393009,La Defense\n"))
	require.NoError(t, err)

	stop := transit.StopConfig{
		Type:        transit.StopTypeRail,
		Station:     "La Defense",
		Destination: "Versailles Rive Droite",
	}

	require.NoError(t, directory.ResolveStop(context.Background(), &stop))
	require.NotNil(t, stop.UIC)
	assert.Equal(t, "87393009", stop.UIC.Station)
	assert.Equal(t, "87384008", stop.UIC.Destination)

	// Non-rail stops pass through untouched
	busStop := transit.StopConfig{Type: transit.StopTypeBus, Station: "buffon"}
	require.NoError(t, directory.ResolveStop(context.Background(), &busStop))
	assert.Nil(t, busStop.UIC)

	// An unknown station is an error and leaves the stop unresolved
	unknown := transit.StopConfig{Type: transit.StopTypeRail, Station: "Atlantis"}
	assert.Error(t, directory.ResolveStop(context.Background(), &unknown))
	assert.Nil(t, unknown.UIC)
}
