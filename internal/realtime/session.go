package realtime

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
)

// Authenticator resolves a bearer token to the identity it was issued for.
type Authenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}

// session tracks the handshake state of one channel. A channel only joins
// the registry after a successful authenticate event.
type session struct {
	ch            Channel
	registry      *Registry
	auth          Authenticator
	logger        zerolog.Logger
	userID        uuid.UUID
	authenticated bool
}

func newSession(ch Channel, registry *Registry, auth Authenticator, logger zerolog.Logger) *session {
	return &session{
		ch:       ch,
		registry: registry,
		auth:     auth,
		logger:   logger.With().Str("channel", ch.ID()).Logger(),
	}
}

// handle processes one inbound frame and reports whether the channel stays open.
func (s *session) handle(frame []byte) bool {
	var in inboundEvent
	if err := json.Unmarshal(frame, &in); err != nil {
		s.logger.Debug().Err(err).Msg("ignoring malformed frame")
		return true
	}

	switch in.Name {
	case EventAuthenticate:
		return s.authenticate(in.Data)
	default:
		s.logger.Debug().Str("event", in.Name).Bool("authenticated", s.authenticated).Msg("ignoring client event")
		return true
	}
}

func (s *session) authenticate(data json.RawMessage) bool {
	var token string
	if err := json.Unmarshal(data, &token); err != nil || strings.TrimSpace(token) == "" {
		s.reject(domain.ErrInvalidToken)
		return false
	}
	token = strings.TrimPrefix(strings.Trim(token, `"'`), "Bearer ")

	userID, err := s.auth.Authenticate(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			s.reject(domain.ErrTokenExpired)
		} else {
			s.reject(domain.ErrInvalidToken)
		}
		return false
	}

	if !s.registry.Add(userID, s.ch) {
		return false
	}
	s.userID = userID
	s.authenticated = true

	s.reply(Event{Name: EventAuthenticated, Data: map[string]string{"userId": userID.String()}})
	s.logger.Info().Str("user_id", userID.String()).Msg("channel authenticated")
	return true
}

func (s *session) reject(reason error) {
	if s.authenticated {
		s.registry.Remove(s.ch)
		s.authenticated = false
	}
	s.reply(Event{Name: EventAuthError, Data: map[string]string{"message": reason.Error()}})
	s.logger.Info().Str("reason", reason.Error()).Msg("channel authentication failed")
}

func (s *session) reply(ev Event) {
	frame, err := ev.Encode()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode reply")
		return
	}
	s.ch.Send(frame)
}
