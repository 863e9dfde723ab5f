package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leander-social/internal/domain"
)

type ForumRepository struct {
	mock.Mock
}

func (m *ForumRepository) Create(ctx context.Context, post *domain.ForumPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *ForumRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ForumPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumPost), args.Error(1)
}

func (m *ForumRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.ForumPost, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.ForumPost), args.Get(1).(int64), args.Error(2)
}

func (m *ForumRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ForumRepository) AddAnswer(ctx context.Context, answer *domain.ForumAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}
