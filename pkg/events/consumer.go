package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/transitpanel/transitpanel/pkg/redis_client"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const numConsumers = 2

func StartConsumers() error {
	log.Info().Msg("Starting panel event consumers")

	queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
	if err != nil {
		return err
	}

	if err := queue.StartConsuming(numConsumers*20, 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < numConsumers; i++ {
		if _, err := queue.AddBatchConsumer(fmt.Sprintf("panel-events-%d", i), 20, 2*time.Second, NewBatchConsumer(i)); err != nil {
			return err
		}
	}

	return nil
}

type BatchConsumer struct {
	id int
}

func NewBatchConsumer(id int) *BatchConsumer {
	return &BatchConsumer{id: id}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, payload := range batch.Payloads() {
		var event transit.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		log.Info().
			Str("type", string(event.Type)).
			Str("stop", event.StopID).
			Time("timestamp", event.Timestamp).
			Msg("Panel event")
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}
