package announcement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"leander-social/internal/domain"
	"leander-social/internal/repository"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateAnnouncementInput) (*domain.Announcement, error)
	GetByID(ctx context.Context, viewerID, id uuid.UUID) (*domain.Announcement, error)
	List(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error)
	Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdateAnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ToggleHighlight(ctx context.Context, userID, id uuid.UUID) (*domain.Announcement, error)
}

type service struct {
	repo repository.AnnouncementRepository
	now  func() time.Time
}

func NewService(repo repository.AnnouncementRepository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateAnnouncementInput) (*domain.Announcement, error) {
	a := &domain.Announcement{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		IsPublic:  true,
		ExpiresAt: input.ExpiresAt,
	}
	if input.IsPublic != nil {
		a.IsPublic = *input.IsPublic
	}
	if input.IsHighlighted != nil {
		a.IsHighlighted = *input.IsHighlighted
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID hides private and expired announcements from everyone but the owner.
func (s *service) GetByID(ctx context.Context, viewerID, id uuid.UUID) (*domain.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAnnouncementNotFound
	}
	if a.UserID != viewerID && (!a.IsPublic || a.Expired(s.now())) {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}

func (s *service) List(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error) {
	params.Validate()
	items, total, err := s.repo.ListVisible(ctx, viewerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Announcement]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdateAnnouncementInput) (*domain.Announcement, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		a.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		a.Content = *input.Content
	}
	if input.IsPublic != nil {
		a.IsPublic = *input.IsPublic
	}
	if input.IsHighlighted != nil {
		a.IsHighlighted = *input.IsHighlighted
	}
	if input.ExpiresAt.Set {
		a.ExpiresAt = input.ExpiresAt.Value
	}

	return s.save(ctx, a)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (s *service) ToggleHighlight(ctx context.Context, userID, id uuid.UUID) (*domain.Announcement, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	a.IsHighlighted = !a.IsHighlighted
	return s.save(ctx, a)
}

func (s *service) owned(ctx context.Context, userID, id uuid.UUID) (*domain.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}

func (s *service) save(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}
