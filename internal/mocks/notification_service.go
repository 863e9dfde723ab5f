package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leander-social/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyNewPublication(ctx context.Context, pub *domain.Publication) error {
	args := m.Called(ctx, pub)
	return args.Error(0)
}

func (m *NotificationService) NotifyLike(ctx context.Context, pub *domain.Publication, like *domain.PublicationLike) error {
	args := m.Called(ctx, pub, like)
	return args.Error(0)
}

func (m *NotificationService) NotifyComment(ctx context.Context, pub *domain.Publication, comment *domain.PublicationComment) error {
	args := m.Called(ctx, pub, comment)
	return args.Error(0)
}

func (m *NotificationService) NotifyForumPost(ctx context.Context, post *domain.ForumPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *NotificationService) NotifyMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *NotificationService) NotifyEvent(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *NotificationService) Retract(ctx context.Context, notifType domain.NotificationType, sourceID uuid.UUID) error {
	args := m.Called(ctx, notifType, sourceID)
	return args.Error(0)
}
