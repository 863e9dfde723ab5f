package event

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
	"leander-social/internal/repository"
	"leander-social/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Event], error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Attend(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error)
	Unattend(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error)
}

type service struct {
	eventRepo repository.EventRepository
	notifSvc  notification.Service
	logger    zerolog.Logger
}

func NewService(eventRepo repository.EventRepository, notifSvc notification.Service, logger zerolog.Logger) Service {
	return &service{
		eventRepo: eventRepo,
		notifSvc:  notifSvc,
		logger:    logger.With().Str("component", "event").Logger(),
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateEventInput) (*domain.Event, error) {
	event := &domain.Event{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		Attendees:   []domain.UserSummary{},
	}
	if input.Date != nil {
		event.Date = input.Date.UTC()
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyEvent(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to notify followers")
	}

	return event, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Event], error) {
	params.Validate()
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Event]{}, err
	}

	return domain.NewPaginatedResponse(events, params.Page, params.PageSize, total), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.eventRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrEventNotFound
	}
	return nil
}

func (s *service) Attend(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.eventRepo.AddAttendee(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) Unattend(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.eventRepo.RemoveAttendee(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
