package poller

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/transitpanel/transitpanel/pkg/config"
	"github.com/transitpanel/transitpanel/pkg/events"
	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/store"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const maxConcurrentRequests = 8

// Poller drives the remote poll cycle: on each tick it fires one request per
// configured stop, dispatches responses to the matching adapter and applies
// the results to the store. Responses complete independently; a later
// response only ever overwrites state for its own stop-index.
type Poller struct {
	Config   config.AppConfig
	Store    *store.Store
	Registry *providers.Registry
	Events   events.Sink

	Client *http.Client

	mu       sync.RWMutex
	nextPoll time.Time
}

func New(cfg config.AppConfig, st *store.Store, registry *providers.Registry, sink events.Sink) *Poller {
	return &Poller{
		Config:   cfg,
		Store:    st,
		Registry: registry,
		Events:   sink,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NextPoll is when the next cycle is due, for the panel header countdown.
func (p *Poller) NextPoll() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.nextPoll
}

// Run loops poll cycles forever. The timer re-arms after every completed
// cycle: the short initial retry delay until a first response has been
// received, the configured interval from then on, including after later
// failures.
func (p *Poller) Run() {
	log.Info().
		Int("stops", len(p.Config.Stops)).
		Dur("interval", p.Config.UpdateInterval.Duration()).
		Msg("Starting poller")

	for {
		startTime := time.Now()

		delay := p.Config.UpdateInterval.Duration()
		if !p.Store.Loaded() {
			delay = p.Config.InitialRetryDelay.Duration()
		}

		p.setNextPoll(startTime.Add(delay))

		p.RunCycle()

		// Recompute after the cycle so the very first response switches
		// straight to the normal interval.
		delay = p.Config.UpdateInterval.Duration()
		if !p.Store.Loaded() {
			delay = p.Config.InitialRetryDelay.Duration()
		}
		p.setNextPoll(startTime.Add(delay))

		waitTime := delay - time.Since(startTime)
		if waitTime > 0 {
			time.Sleep(waitTime)
		}
	}
}

func (p *Poller) setNextPoll(t time.Time) {
	p.mu.Lock()
	p.nextPoll = t
	p.mu.Unlock()
}

// RunCycle fires all per-stop requests for one tick and waits for them to
// settle. There is no barrier between stops beyond this wait; a slow
// provider cannot block the others' state updates.
func (p *Poller) RunCycle() {
	requests := pool.New().WithMaxGoroutines(maxConcurrentRequests)

	for _, stop := range p.Config.Stops {
		requests.Go(func() {
			p.pollStop(stop)
		})
	}

	requests.Wait()

	p.Events.Publish(transit.Event{
		Type:      transit.EventTypePollCycleComplete,
		Timestamp: time.Now(),
	})
}

func (p *Poller) pollStop(stop transit.StopConfig) {
	adapter := p.Registry.For(stop.Type)
	if adapter == nil {
		log.Warn().Str("type", string(stop.Type)).Msg("No adapter for stop type")
		return
	}

	index := adapter.Index(stop)
	if index == "" {
		log.Debug().
			Str("type", string(stop.Type)).
			Str("station", stop.Station).
			Msg("Skipping stop with unresolved identity")
		return
	}

	requestURL, authorization := p.requestFor(stop)
	if requestURL == "" {
		log.Warn().Str("index", index).Msg("No API base configured for stop")
		return
	}

	now := time.Now()

	body, err := p.fetch(requestURL, authorization)
	if err != nil {
		// No response at all: keep showing last-known-good data, advance
		// the staleness clock, leave the loaded flag untouched.
		log.Error().Err(err).Str("index", index).Msg("Request failed")
		p.Store.Touch(index, now)
		return
	}

	update, err := adapter.Parse(stop, body, now)
	if err != nil {
		log.Error().Err(err).Str("index", index).Msg("Failed to parse response")
	}

	for _, event := range p.Store.Apply(context.Background(), index, update, now) {
		p.Events.Publish(event)
	}
}
