package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leander-social/internal/domain"
)

type PublicationRepository struct {
	mock.Mock
}

func (m *PublicationRepository) Create(ctx context.Context, pub *domain.Publication) error {
	args := m.Called(ctx, pub)
	return args.Error(0)
}

func (m *PublicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Publication, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Publication), args.Get(1).(int64), args.Error(2)
}

func (m *PublicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Publication, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Publication), args.Error(1)
}

func (m *PublicationRepository) Update(ctx context.Context, pub *domain.Publication) (bool, error) {
	args := m.Called(ctx, pub)
	return args.Bool(0), args.Error(1)
}

func (m *PublicationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *PublicationRepository) AddLike(ctx context.Context, like *domain.PublicationLike) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}

func (m *PublicationRepository) RemoveLike(ctx context.Context, publicationID, userID uuid.UUID) (*domain.PublicationLike, error) {
	args := m.Called(ctx, publicationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicationLike), args.Error(1)
}

func (m *PublicationRepository) AddComment(ctx context.Context, comment *domain.PublicationComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *PublicationRepository) GetComment(ctx context.Context, publicationID, commentID uuid.UUID) (*domain.PublicationComment, error) {
	args := m.Called(ctx, publicationID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicationComment), args.Error(1)
}

func (m *PublicationRepository) UpdateComment(ctx context.Context, comment *domain.PublicationComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *PublicationRepository) DeleteComment(ctx context.Context, publicationID, commentID uuid.UUID) error {
	args := m.Called(ctx, publicationID, commentID)
	return args.Error(0)
}
