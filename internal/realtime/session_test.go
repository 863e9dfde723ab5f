package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leander-social/internal/domain"
)

type stubAuthenticator struct {
	tokens map[string]uuid.UUID
	err    error
}

func (s stubAuthenticator) Authenticate(token string) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	id, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

func TestSession_Authenticate(t *testing.T) {
	userID := uuid.New()
	auth := stubAuthenticator{tokens: map[string]uuid.UUID{"good": userID}}

	t.Run("valid token joins the identity group", func(t *testing.T) {
		registry := NewRegistry(zerolog.Nop())
		ch := newFakeChannel()
		s := newSession(ch, registry, auth, zerolog.Nop())

		open := s.handle([]byte(`{"event":"authenticate","data":"good"}`))

		assert.True(t, open)
		assert.Len(t, registry.Lookup(userID), 1)
		events := ch.received(t)
		require.Len(t, events, 1)
		assert.Equal(t, EventAuthenticated, events[0].Name)
	})

	t.Run("quoted bearer token is accepted", func(t *testing.T) {
		registry := NewRegistry(zerolog.Nop())
		ch := newFakeChannel()
		s := newSession(ch, registry, auth, zerolog.Nop())

		assert.True(t, s.handle([]byte(`{"event":"authenticate","data":"\"Bearer good\""}`)))
		assert.Len(t, registry.Lookup(userID), 1)
	})

	t.Run("invalid token is rejected and closes", func(t *testing.T) {
		registry := NewRegistry(zerolog.Nop())
		ch := newFakeChannel()
		s := newSession(ch, registry, auth, zerolog.Nop())

		open := s.handle([]byte(`{"event":"authenticate","data":"bad"}`))

		assert.False(t, open)
		assert.Equal(t, 0, registry.Count())
		events := ch.received(t)
		require.Len(t, events, 1)
		assert.Equal(t, EventAuthError, events[0].Name)
		assert.JSONEq(t, `{"message":"invalid token"}`, string(events[0].Data))
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		registry := NewRegistry(zerolog.Nop())
		ch := newFakeChannel()
		s := newSession(ch, registry, stubAuthenticator{err: domain.ErrTokenExpired}, zerolog.Nop())

		open := s.handle([]byte(`{"event":"authenticate","data":"old"}`))

		assert.False(t, open)
		events := ch.received(t)
		require.Len(t, events, 1)
		assert.Equal(t, EventAuthError, events[0].Name)
		assert.JSONEq(t, `{"message":"token expired"}`, string(events[0].Data))
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		registry := NewRegistry(zerolog.Nop())
		ch := newFakeChannel()
		s := newSession(ch, registry, auth, zerolog.Nop())

		assert.False(t, s.handle([]byte(`{"event":"authenticate"}`)))
		assert.Equal(t, 0, registry.Count())
	})
}

func TestSession_UnauthenticatedChannelReceivesNothing(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	ch := newFakeChannel()
	s := newSession(ch, registry, stubAuthenticator{}, zerolog.Nop())

	assert.True(t, s.handle([]byte(`{"event":"ping"}`)))
	assert.True(t, s.handle([]byte(`garbage`)))

	registry.Broadcast(Event{Name: EventNewPublication})
	registry.SendTo(uuid.New(), Event{Name: EventNewNotification})

	assert.Empty(t, ch.received(t))
}
