package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

func TestReduceByDestinationContiguousRuns(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)

	t1 := now.Add(5 * time.Minute)
	t2 := now.Add(9 * time.Minute)
	t3 := now.Add(12 * time.Minute)

	groups := ReduceByDestination([]transit.Schedule{
		{Destination: "D1", Time: &t1},
		{Destination: "D1", Time: &t2},
		{Destination: "D2", Time: &t3},
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "D1", groups[0].Destination)
	assert.Equal(t, []*time.Time{&t1, &t2}, groups[0].Times)
	assert.Equal(t, "D2", groups[1].Destination)
	assert.Equal(t, []*time.Time{&t3}, groups[1].Times)
}

func TestReduceByDestinationNonAdjacentRepeats(t *testing.T) {
	now := time.Date(2017, 7, 16, 22, 0, 0, 0, time.UTC)

	t1 := now.Add(5 * time.Minute)
	t2 := now.Add(10 * time.Minute)
	t3 := now.Add(15 * time.Minute)

	groups := ReduceByDestination([]transit.Schedule{
		{Destination: "D1", Time: &t1},
		{Destination: "D2", Time: &t2},
		{Destination: "D1", Time: &t3},
	})

	// A destination returning after an interruption starts a new bucket
	require.Len(t, groups, 3)
	assert.Equal(t, "D1", groups[0].Destination)
	assert.Equal(t, "D2", groups[1].Destination)
	assert.Equal(t, "D1", groups[2].Destination)
}

func TestReduceByDestinationEmpty(t *testing.T) {
	assert.Empty(t, ReduceByDestination(nil))
}
