package message

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
	"leander-social/internal/repository"
	"leander-social/internal/service/notification"
)

type Service interface {
	Send(ctx context.Context, emitterID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	Received(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	Emitted(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	UnviewedCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkViewed(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	notifSvc notification.Service
	logger   zerolog.Logger
}

func NewService(
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	logger zerolog.Logger,
) Service {
	return &service{
		msgRepo:  msgRepo,
		userRepo: userRepo,
		notifSvc: notifSvc,
		logger:   logger.With().Str("component", "message").Logger(),
	}
}

func (s *service) Send(ctx context.Context, emitterID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	receiver, err := s.userRepo.GetByID(ctx, input.Receiver)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, domain.ErrUserNotFound
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		EmitterID:  emitterID,
		ReceiverID: receiver.ID,
		Text:       input.Text,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if stored, err := s.msgRepo.GetByID(ctx, msg.ID); err == nil && stored != nil {
		msg = stored
	}

	if err := s.notifSvc.NotifyMessage(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("message_id", msg.ID.String()).Msg("failed to notify receiver")
	}

	return msg, nil
}

func (s *service) Received(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	params.Validate()
	msgs, total, err := s.msgRepo.ListReceived(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(msgs, params.Page, params.PageSize, total), nil
}

func (s *service) Emitted(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	params.Validate()
	msgs, total, err := s.msgRepo.ListEmitted(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(msgs, params.Page, params.PageSize, total), nil
}

func (s *service) UnviewedCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.msgRepo.CountUnviewed(ctx, userID)
}

func (s *service) MarkViewed(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.msgRepo.MarkAllViewed(ctx, userID)
}
