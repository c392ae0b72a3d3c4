package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const historyKeyPrefix = "transitpanel/bikehistory/"

// RedisHistoryStore persists each station's history as one JSON-encoded array
// under a single key.
type RedisHistoryStore struct {
	Client *redis.Client
}

func (r *RedisHistoryStore) Load(ctx context.Context, stationID string) ([]transit.BikeStationSnapshot, error) {
	value, err := r.Client.Get(ctx, historyKeyPrefix+stationID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snapshots []transit.BikeStationSnapshot
	if err := json.Unmarshal([]byte(value), &snapshots); err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (r *RedisHistoryStore) Save(ctx context.Context, stationID string, snapshots []transit.BikeStationSnapshot) error {
	encoded, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}

	return r.Client.Set(ctx, historyKeyPrefix+stationID, encoded, 0).Err()
}
