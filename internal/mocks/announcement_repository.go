package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leander-social/internal/domain"
)

type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}

func (m *AnnouncementRepository) ListVisible(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	args := m.Called(ctx, viewerID, params)
	return args.Get(0).([]domain.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *AnnouncementRepository) Update(ctx context.Context, announcement *domain.Announcement) (bool, error) {
	args := m.Called(ctx, announcement)
	return args.Bool(0), args.Error(1)
}

func (m *AnnouncementRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}
