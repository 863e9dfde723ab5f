package forum

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
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateForumPostInput) (*domain.ForumPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ForumPost, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ForumPost], error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Answer(ctx context.Context, userID, id uuid.UUID, input domain.ForumAnswerInput) (*domain.ForumPost, error)
}

type service struct {
	forumRepo repository.ForumRepository
	notifSvc  notification.Service
	logger    zerolog.Logger
}

func NewService(forumRepo repository.ForumRepository, notifSvc notification.Service, logger zerolog.Logger) Service {
	return &service{
		forumRepo: forumRepo,
		notifSvc:  notifSvc,
		logger:    logger.With().Str("component", "forum").Logger(),
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateForumPostInput) (*domain.ForumPost, error) {
	post := &domain.ForumPost{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   strings.TrimSpace(input.Title),
		Text:    input.Text,
		Answers: []domain.ForumAnswer{},
	}

	if err := s.forumRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyForumPost(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", post.ID.String()).Msg("failed to notify followers")
	}

	return post, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrForumPostNotFound
	}
	return post, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ForumPost], error) {
	params.Validate()
	posts, total, err := s.forumRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ForumPost]{}, err
	}

	return domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.forumRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrForumPostNotFound
	}
	return nil
}

// Answer appends an answer and returns the post with all of its answers.
func (s *service) Answer(ctx context.Context, userID, id uuid.UUID, input domain.ForumAnswerInput) (*domain.ForumPost, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	answer := &domain.ForumAnswer{
		ID:     uuid.New(),
		PostID: id,
		UserID: userID,
		Text:   input.Text,
	}
	if err := s.forumRepo.AddAnswer(ctx, answer); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}
