package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/pkg/i18n"
	"leander-social/internal/realtime"
	"leander-social/internal/repository"
)

const previewLength = 80

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyNewPublication(ctx context.Context, pub *domain.Publication) error
	NotifyLike(ctx context.Context, pub *domain.Publication, like *domain.PublicationLike) error
	NotifyComment(ctx context.Context, pub *domain.Publication, comment *domain.PublicationComment) error
	NotifyForumPost(ctx context.Context, post *domain.ForumPost) error
	NotifyMessage(ctx context.Context, msg *domain.Message) error
	NotifyEvent(ctx context.Context, event *domain.Event) error
	Retract(ctx context.Context, notifType domain.NotificationType, sourceID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	publisher realtime.Publisher
	locale    string
	logger    zerolog.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publisher realtime.Publisher,
	cfg *config.Config,
	logger zerolog.Logger,
) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		publisher: publisher,
		locale:    cfg.DefaultLocale,
		logger:    logger.With().Str("component", "notification").Logger(),
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	updated, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notifRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.push(ctx, []uuid.UUID{userID}, realtime.Event{
		Name: realtime.EventNotificationsViewed,
		Data: domain.NotificationsViewed{UserID: userID, UpdatedCount: count},
	})
	return count, nil
}

func (s *service) NotifyNewPublication(ctx context.Context, pub *domain.Publication) error {
	author, err := s.emitter(ctx, pub.UserID)
	if err != nil {
		return err
	}

	followers, err := s.userRepo.FollowerIDs(ctx, pub.UserID)
	if err != nil {
		return err
	}
	if len(followers) == 0 {
		return nil
	}

	pubID := pub.ID
	vars := s.vars(author, map[string]string{"title": pub.Title})
	created := s.record(ctx, author, followers, func() *domain.Notification {
		return &domain.Notification{
			Type:          domain.NotifPublication,
			PublicationID: &pubID,
			SourceID:      &pubID,
			Title:         i18n.Render(s.locale, "PUBLICATION_TITLE", vars),
			Message:       i18n.Render(s.locale, "PUBLICATION_MESSAGE", vars),
		}
	})

	s.push(ctx, followers, realtime.Event{
		Name: realtime.EventNewPublication,
		Data: domain.NewPublicationPayload{Publication: pub, Author: author.Summary()},
	})
	s.announce(ctx, created)
	return nil
}

func (s *service) NotifyLike(ctx context.Context, pub *domain.Publication, like *domain.PublicationLike) error {
	if like.UserID == pub.UserID {
		return nil
	}

	actor, err := s.emitter(ctx, like.UserID)
	if err != nil {
		return err
	}

	pubID, likeID := pub.ID, like.ID
	vars := s.vars(actor, map[string]string{"title": pub.Title})
	created := s.record(ctx, actor, []uuid.UUID{pub.UserID}, func() *domain.Notification {
		return &domain.Notification{
			Type:          domain.NotifLike,
			PublicationID: &pubID,
			SourceID:      &likeID,
			Title:         i18n.Render(s.locale, "LIKE_TITLE", vars),
			Message:       i18n.Render(s.locale, "LIKE_MESSAGE", vars),
		}
	})

	s.announce(ctx, created)
	return nil
}

func (s *service) NotifyComment(ctx context.Context, pub *domain.Publication, comment *domain.PublicationComment) error {
	if comment.UserID == pub.UserID {
		return nil
	}

	actor, err := s.emitter(ctx, comment.UserID)
	if err != nil {
		return err
	}

	pubID, commentID := pub.ID, comment.ID
	vars := s.vars(actor, map[string]string{"title": pub.Title, "text": preview(comment.Text)})
	created := s.record(ctx, actor, []uuid.UUID{pub.UserID}, func() *domain.Notification {
		return &domain.Notification{
			Type:          domain.NotifComment,
			PublicationID: &pubID,
			SourceID:      &commentID,
			Title:         i18n.Render(s.locale, "COMMENT_TITLE", vars),
			Message:       i18n.Render(s.locale, "COMMENT_MESSAGE", vars),
		}
	})

	s.announce(ctx, created)
	return nil
}

func (s *service) NotifyForumPost(ctx context.Context, post *domain.ForumPost) error {
	author, err := s.emitter(ctx, post.UserID)
	if err != nil {
		return err
	}

	followers, err := s.userRepo.FollowerIDs(ctx, post.UserID)
	if err != nil {
		return err
	}

	postID := post.ID
	vars := s.vars(author, map[string]string{"title": post.Title})
	created := s.record(ctx, author, followers, func() *domain.Notification {
		return &domain.Notification{
			Type:        domain.NotifForum,
			ForumPostID: &postID,
			SourceID:    &postID,
			Title:       i18n.Render(s.locale, "FORUM_TITLE", vars),
			Message:     i18n.Render(s.locale, "FORUM_MESSAGE", vars),
		}
	})

	s.announce(ctx, created)
	return nil
}

func (s *service) NotifyMessage(ctx context.Context, msg *domain.Message) error {
	sender, err := s.emitter(ctx, msg.EmitterID)
	if err != nil {
		return err
	}

	msgID := msg.ID
	vars := s.vars(sender, map[string]string{"text": preview(msg.Text)})
	created := s.record(ctx, sender, []uuid.UUID{msg.ReceiverID}, func() *domain.Notification {
		return &domain.Notification{
			Type:      domain.NotifMessage,
			MessageID: &msgID,
			SourceID:  &msgID,
			Title:     i18n.Render(s.locale, "MESSAGE_TITLE", vars),
			Message:   i18n.Render(s.locale, "MESSAGE_MESSAGE", vars),
		}
	})

	s.push(ctx, []uuid.UUID{msg.ReceiverID}, realtime.Event{Name: realtime.EventNewMessage, Data: msg})
	s.announce(ctx, created)
	return nil
}

func (s *service) NotifyEvent(ctx context.Context, event *domain.Event) error {
	creator, err := s.emitter(ctx, event.UserID)
	if err != nil {
		return err
	}

	followers, err := s.userRepo.FollowerIDs(ctx, event.UserID)
	if err != nil {
		return err
	}

	eventID := event.ID
	vars := s.vars(creator, map[string]string{"title": event.Title})
	created := s.record(ctx, creator, followers, func() *domain.Notification {
		return &domain.Notification{
			Type:     domain.NotifEvent,
			EventID:  &eventID,
			SourceID: &eventID,
			Title:    i18n.Render(s.locale, "EVENT_TITLE", vars),
			Message:  i18n.Render(s.locale, "EVENT_MESSAGE", vars),
		}
	})

	s.announce(ctx, created)
	return nil
}

func (s *service) Retract(ctx context.Context, notifType domain.NotificationType, sourceID uuid.UUID) error {
	deleted, err := s.notifRepo.DeleteBySource(ctx, notifType, sourceID)
	if err != nil {
		return err
	}
	s.logger.Debug().Str("type", string(notifType)).Str("source_id", sourceID.String()).Int64("deleted", deleted).Msg("notifications retracted")
	return nil
}

func (s *service) emitter(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// record writes one ledger entry per recipient, skipping the emitter. A failed
// write is logged and does not stop the remaining recipients.
func (s *service) record(ctx context.Context, emitter *domain.User, recipients []uuid.UUID, build func() *domain.Notification) []*domain.Notification {
	created := make([]*domain.Notification, 0, len(recipients))
	for _, receiverID := range recipients {
		if receiverID == emitter.ID {
			continue
		}

		notif := build()
		notif.ID = uuid.New()
		notif.EmitterID = emitter.ID
		notif.ReceiverID = receiverID

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			s.logger.Error().Err(err).
				Str("type", string(notif.Type)).
				Str("receiver_id", receiverID.String()).
				Msg("failed to record notification")
			continue
		}
		notif.Emitter = emitter.Summary()
		created = append(created, notif)
	}
	return created
}

func (s *service) announce(ctx context.Context, created []*domain.Notification) {
	for _, notif := range created {
		s.push(ctx, []uuid.UUID{notif.ReceiverID}, realtime.Event{Name: realtime.EventNewNotification, Data: notif})
	}
}

// push logs publish failures instead of returning them.
func (s *service) push(ctx context.Context, recipients []uuid.UUID, ev realtime.Event) {
	if err := s.publisher.Publish(ctx, recipients, ev); err != nil {
		s.logger.Warn().Err(err).Str("event", ev.Name).Int("recipients", len(recipients)).Msg("failed to push event")
	}
}

func (s *service) vars(actor *domain.User, extra map[string]string) map[string]string {
	vars := map[string]string{
		"name":    actor.Name,
		"surname": actor.Surname,
		"nick":    actor.Nick,
	}
	for k, v := range extra {
		vars[k] = v
	}
	return vars
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "…"
}
