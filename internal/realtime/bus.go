package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher pushes an event to every live channel of each recipient.
// Recipients without a channel are skipped silently.
type Publisher interface {
	Publish(ctx context.Context, recipients []uuid.UUID, ev Event) error
}

// LocalBus delivers straight to the in-process registry.
type LocalBus struct {
	registry *Registry
}

func NewLocalBus(registry *Registry) *LocalBus {
	return &LocalBus{registry: registry}
}

func (b *LocalBus) Publish(ctx context.Context, recipients []uuid.UUID, ev Event) error {
	for _, id := range recipients {
		b.registry.SendTo(id, ev)
	}
	return nil
}

type envelope struct {
	Recipients []uuid.UUID     `json:"recipients"`
	Event      string          `json:"event"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// RedisBus relays events through a Redis pub/sub channel so that every API
// instance delivers to the channels registered with it.
type RedisBus struct {
	client   *redis.Client
	channel  string
	registry *Registry
	logger   zerolog.Logger
}

func NewRedisBus(client *redis.Client, channel string, registry *Registry, logger zerolog.Logger) *RedisBus {
	return &RedisBus{
		client:   client,
		channel:  channel,
		registry: registry,
		logger:   logger.With().Str("component", "redis_bus").Logger(),
	}
}

func (b *RedisBus) Publish(ctx context.Context, recipients []uuid.UUID, ev Event) error {
	if len(recipients) == 0 {
		return nil
	}

	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{Recipients: recipients, Event: ev.Name, Data: data})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

// Run delivers relayed events to the local registry until ctx is done.
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.logger.Info().Str("channel", b.channel).Msg("subscribed to realtime channel")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.dispatch(msg.Payload)
		}
	}
}

func (b *RedisBus) dispatch(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		b.logger.Warn().Err(err).Msg("discarding malformed envelope")
		return
	}

	ev := Event{Name: env.Event, Data: env.Data}
	for _, id := range env.Recipients {
		b.registry.SendTo(id, ev)
	}
}
