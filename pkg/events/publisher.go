package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/transitpanel/transitpanel/pkg/redis_client"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const QueueName = "panel-events"

// Sink receives the notifications emitted towards the presentation layer.
type Sink interface {
	Publish(event transit.Event)
}

// QueuePublisher pushes events onto the rmq queue for external subscribers.
type QueuePublisher struct {
	queue rmq.Queue
}

func NewQueuePublisher() (*QueuePublisher, error) {
	queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &QueuePublisher{queue: queue}, nil
}

func (p *QueuePublisher) Publish(event transit.Event) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to encode event")
		return
	}

	if err := p.queue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
	}
}

// NopSink drops events; used when no queue connection is available.
type NopSink struct{}

func (NopSink) Publish(event transit.Event) {}
