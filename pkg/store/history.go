package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

// HistoryStore is the persistence port for the bike-station history:
// read-all-at-startup, write-back-on-append.
type HistoryStore interface {
	Load(ctx context.Context, stationID string) ([]transit.BikeStationSnapshot, error)
	Save(ctx context.Context, stationID string, snapshots []transit.BikeStationSnapshot) error
}

// HistoryLog is the append-only, time-bounded snapshot history per bike
// station. Appends are deduplicated on LastUpdate; losing at most one
// snapshot when persistence fails mid-append is accepted.
type HistoryLog struct {
	mu sync.Mutex

	entries map[string][]transit.BikeStationSnapshot

	maxEntries int
	maxAge     time.Duration

	store HistoryStore
}

func NewHistoryLog(maxEntries int, maxAge time.Duration, store HistoryStore) *HistoryLog {
	return &HistoryLog{
		entries:    map[string][]transit.BikeStationSnapshot{},
		maxEntries: maxEntries,
		maxAge:     maxAge,
		store:      store,
	}
}

// Restore loads the persisted history for the given station indexes.
func (h *HistoryLog) Restore(ctx context.Context, stationIDs []string) {
	if h.store == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, stationID := range stationIDs {
		snapshots, err := h.store.Load(ctx, stationID)
		if err != nil {
			log.Error().Err(err).Str("station", stationID).Msg("Failed to restore bike history")
			continue
		}

		if len(snapshots) > 0 {
			h.entries[stationID] = snapshots
			log.Info().Str("station", stationID).Int("snapshots", len(snapshots)).Msg("Restored bike history")
		}
	}
}

// Append adds a snapshot to a station's history unless its LastUpdate matches
// the newest stored one. It reports whether the snapshot was accepted.
func (h *HistoryLog) Append(ctx context.Context, stationID string, snapshot transit.BikeStationSnapshot, now time.Time) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.entries[stationID]

	if len(entries) > 0 && entries[len(entries)-1].LastUpdate.Equal(snapshot.LastUpdate) {
		return false, nil
	}

	entries = append(entries, snapshot)
	entries = h.bound(entries, now)
	h.entries[stationID] = entries

	if h.store != nil {
		if err := h.store.Save(ctx, stationID, entries); err != nil {
			log.Error().Err(err).Str("station", stationID).Msg("Failed to persist bike history")
			return true, err
		}
	}

	return true, nil
}

// Entries returns a copy of the station's history, oldest first.
func (h *HistoryLog) Entries(stationID string) []transit.BikeStationSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.entries[stationID]

	out := make([]transit.BikeStationSnapshot, len(entries))
	copy(out, entries)

	return out
}

func (h *HistoryLog) bound(entries []transit.BikeStationSnapshot, now time.Time) []transit.BikeStationSnapshot {
	if h.maxAge > 0 {
		cutoff := now.Add(-h.maxAge)
		firstFresh := 0
		for firstFresh < len(entries) && entries[firstFresh].LastUpdate.Before(cutoff) {
			firstFresh++
		}
		entries = entries[firstFresh:]
	}

	if h.maxEntries > 0 && len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	return entries
}
