package store

import (
	"context"
	"sync"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Store holds the latest normalised record per stop-index. Records are
// replaced wholesale; readers get the stored pointer and must not mutate it.
type Store struct {
	mu sync.RWMutex

	schedules  map[string]*transit.ScheduleSet
	traffic    map[string]*transit.TrafficInfo
	lastUpdate map[string]time.Time

	loaded bool

	history *HistoryLog
}

func New(history *HistoryLog) *Store {
	return &Store{
		schedules:  map[string]*transit.ScheduleSet{},
		traffic:    map[string]*transit.TrafficInfo{},
		lastUpdate: map[string]time.Time{},
		history:    history,
	}
}

// Apply records the outcome of one poll for a stop-index and returns the
// events to publish. The per-index staleness clock and the loaded flag advance
// on every response, parseable or not, so a provider that keeps answering with
// garbage neither looks stale nor pins the scheduler on the initial retry
// delay. An empty update never overwrites previously stored records.
func (s *Store) Apply(ctx context.Context, index string, update transit.Update, now time.Time) []transit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUpdate[index] = now
	s.loaded = true

	if update.Empty() {
		return nil
	}

	var events []transit.Event

	if update.Schedules != nil {
		s.schedules[index] = update.Schedules
		events = append(events, transit.Event{
			Type:      transit.EventTypeScheduleUpdated,
			Timestamp: now,
			StopID:    index,
			Body:      update.Schedules,
		})
	}

	if update.Traffic != nil {
		s.traffic[index] = update.Traffic
		events = append(events, transit.Event{
			Type:      transit.EventTypeTrafficUpdated,
			Timestamp: now,
			StopID:    index,
			Body:      update.Traffic,
		})
	}

	if update.Bike != nil && s.history != nil {
		appended, err := s.history.Append(ctx, index, *update.Bike, now)
		if err != nil {
			return events
		}
		if appended {
			events = append(events, transit.Event{
				Type:      transit.EventTypeBikeSnapshotAdded,
				Timestamp: now,
				StopID:    index,
				Body:      update.Bike,
			})
		}
	}

	return events
}

// Touch advances an index's staleness clock without counting as a received
// response. The poller uses it when the request itself failed, so the loaded
// flag and the initial retry delay stay governed by actual responses.
func (s *Store) Touch(index string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUpdate[index] = now
}

// Schedules returns the latest schedule set and staleness clock for an index.
func (s *Store) Schedules(index string) (*transit.ScheduleSet, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, found := s.schedules[index]

	return set, s.lastUpdate[index], found
}

func (s *Store) Traffic(index string) (*transit.TrafficInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, found := s.traffic[index]

	return info, found
}

func (s *Store) LastUpdate(index string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdate[index]
}

// Loaded reports whether at least one response has ever been received. The
// poll scheduler uses it to switch from the short initial retry delay to the
// normal interval.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

func (s *Store) History() *HistoryLog {
	return s.history
}
