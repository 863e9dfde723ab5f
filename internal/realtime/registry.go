package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Channel is one live connection that can receive encoded events.
type Channel interface {
	ID() string
	// Send queues frame without blocking and reports false when the channel
	// can no longer keep up or is closed.
	Send(frame []byte) bool
	Close()
}

// Registry maps authenticated identities to their live channels. An identity
// may hold any number of channels at once.
type Registry struct {
	mu     sync.RWMutex
	groups map[uuid.UUID]map[string]Channel
	owners map[string]uuid.UUID
	closed bool
	logger zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		groups: make(map[uuid.UUID]map[string]Channel),
		owners: make(map[string]uuid.UUID),
		logger: logger.With().Str("component", "registry").Logger(),
	}
}

// Add joins ch to the group of userID, leaving any group it was in before.
func (r *Registry) Add(userID uuid.UUID, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	if previous, ok := r.owners[ch.ID()]; ok {
		r.detach(previous, ch.ID())
	}

	group, ok := r.groups[userID]
	if !ok {
		group = make(map[string]Channel)
		r.groups[userID] = group
	}
	group[ch.ID()] = ch
	r.owners[ch.ID()] = userID

	r.logger.Debug().Str("user_id", userID.String()).Str("channel", ch.ID()).Int("channels", len(group)).Msg("channel registered")
	return true
}

// Remove drops ch from whichever group holds it.
func (r *Registry) Remove(ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.owners[ch.ID()]
	if !ok {
		return false
	}
	r.detach(userID, ch.ID())

	r.logger.Debug().Str("user_id", userID.String()).Str("channel", ch.ID()).Msg("channel removed")
	return true
}

func (r *Registry) detach(userID uuid.UUID, channelID string) {
	delete(r.owners, channelID)
	group := r.groups[userID]
	delete(group, channelID)
	if len(group) == 0 {
		delete(r.groups, userID)
	}
}

func (r *Registry) Lookup(userID uuid.UUID) []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group := r.groups[userID]
	channels := make([]Channel, 0, len(group))
	for _, ch := range group {
		channels = append(channels, ch)
	}
	return channels
}

// SendTo delivers ev to every channel of userID and returns how many
// accepted it. Channels that refuse the frame are dropped.
func (r *Registry) SendTo(userID uuid.UUID, ev Event) int {
	channels := r.Lookup(userID)
	if len(channels) == 0 {
		return 0
	}

	frame, err := ev.Encode()
	if err != nil {
		r.logger.Error().Err(err).Str("event", ev.Name).Msg("failed to encode event")
		return 0
	}
	return r.deliver(channels, frame)
}

func (r *Registry) Broadcast(ev Event) int {
	r.mu.RLock()
	channels := make([]Channel, 0, len(r.owners))
	for _, group := range r.groups {
		for _, ch := range group {
			channels = append(channels, ch)
		}
	}
	r.mu.RUnlock()

	if len(channels) == 0 {
		return 0
	}

	frame, err := ev.Encode()
	if err != nil {
		r.logger.Error().Err(err).Str("event", ev.Name).Msg("failed to encode event")
		return 0
	}
	return r.deliver(channels, frame)
}

func (r *Registry) deliver(channels []Channel, frame []byte) int {
	delivered := 0
	for _, ch := range channels {
		if ch.Send(frame) {
			delivered++
			continue
		}
		r.logger.Warn().Str("channel", ch.ID()).Msg("dropping slow channel")
		r.Remove(ch)
		ch.Close()
	}
	return delivered
}

// Count returns the number of registered channels.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}

// Close closes every channel and refuses further registrations.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	channels := make([]Channel, 0, len(r.owners))
	for _, group := range r.groups {
		for _, ch := range group {
			channels = append(channels, ch)
		}
	}
	r.groups = make(map[uuid.UUID]map[string]Channel)
	r.owners = make(map[string]uuid.UUID)
	r.closed = true
	r.mu.Unlock()

	for _, ch := range channels {
		ch.Close()
	}
	r.logger.Info().Int("channels", len(channels)).Msg("registry closed")
}
