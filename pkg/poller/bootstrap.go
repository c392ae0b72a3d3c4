package poller

import (
	"context"

	"github.com/eko/gocache/lib/v4/cache"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/transitpanel/transitpanel/pkg/config"
	"github.com/transitpanel/transitpanel/pkg/events"
	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/redis_client"
	"github.com/transitpanel/transitpanel/pkg/store"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Bootstrap wires a ready-to-run poller from the configuration file: redis,
// station directory, stop resolution, bike history restore and the event
// queue. A stop that cannot be resolved is logged and left to be skipped each
// cycle; nothing here is fatal past the initial config and redis connection.
func Bootstrap(configPath string) (*Poller, error) {
	if err := config.Load(configPath); err != nil {
		return nil, err
	}
	cfg := config.Config

	if err := redis_client.Connect(); err != nil {
		return nil, err
	}

	resolutions := cache.New[string](redis_store.NewRedis(redis_client.Client))
	directory := providers.NewDirectory(resolutions)

	hasRail := false
	for _, stop := range cfg.Stops {
		if stop.Type == transit.StopTypeRail {
			hasRail = true
			break
		}
	}

	if hasRail && cfg.APIs.Directory.BaseURL != "" {
		if err := directory.Download(cfg.APIs.Directory.BaseURL); err != nil {
			log.Error().Err(err).Msg("Failed to download station directory, relying on cached resolutions")
		}
	}

	ctx := context.Background()

	for i := range cfg.Stops {
		if err := directory.ResolveStop(ctx, &cfg.Stops[i]); err != nil {
			log.Error().Err(err).
				Str("station", cfg.Stops[i].Station).
				Msg("Failed to resolve stop, it will be skipped")
		}
	}

	registry := providers.NewRegistry(directory)

	historyLog := store.NewHistoryLog(
		cfg.History.MaxEntries,
		cfg.History.MaxAge.Duration(),
		&store.RedisHistoryStore{Client: redis_client.Client},
	)

	var bikeIndexes []string
	for _, stop := range cfg.Stops {
		if stop.Type != transit.StopTypeVelib {
			continue
		}
		if index := (providers.Velib{}).Index(stop); index != "" {
			bikeIndexes = append(bikeIndexes, index)
		}
	}
	historyLog.Restore(ctx, bikeIndexes)

	var sink events.Sink
	publisher, err := events.NewQueuePublisher()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open event queue, events will be dropped")
		sink = events.NopSink{}
	} else {
		sink = publisher
	}

	return New(cfg, store.New(historyLog), registry, sink), nil
}
