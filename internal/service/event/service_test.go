package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leander-social/internal/domain"
	"leander-social/internal/mocks"
	"leander-social/internal/service/event"
)

func TestEventService_Create(t *testing.T) {
	mockRepo := new(mocks.EventRepository)
	mockNotif := new(mocks.NotificationService)
	svc := event.NewService(mockRepo, mockNotif, zerolog.Nop())
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2026, 11, 3, 18, 0, 0, 0, time.FixedZone("CET", 3600))

	mockRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.UserID == userID && e.Date.Equal(date) && e.Date.Location() == time.UTC
	})).Return(nil).Once()
	mockNotif.On("NotifyEvent", ctx, mock.AnythingOfType("*domain.Event")).Return(nil).Once()

	created, err := svc.Create(ctx, userID, domain.CreateEventInput{
		Title:       "Reunión",
		Description: "Mensual",
		Date:        &date,
		Location:    "Sala 2",
	})

	require.NoError(t, err)
	assert.Equal(t, "Reunión", created.Title)
	assert.Empty(t, created.Attendees)
	mockRepo.AssertExpectations(t)
	mockNotif.AssertExpectations(t)
}

func TestEventService_Attend(t *testing.T) {
	mockRepo := new(mocks.EventRepository)
	svc := event.NewService(mockRepo, new(mocks.NotificationService), zerolog.Nop())
	ctx := context.Background()
	userID, eventID := uuid.New(), uuid.New()

	t.Run("Unknown event", func(t *testing.T) {
		mockRepo.On("GetByID", ctx, eventID).Return(nil, nil).Once()

		_, err := svc.Attend(ctx, userID, eventID)

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		mockRepo.AssertNotCalled(t, "AddAttendee", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Attend", func(t *testing.T) {
		attended := &domain.Event{ID: eventID, Attendees: []domain.UserSummary{{ID: userID}}}
		mockRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID}, nil).Once()
		mockRepo.On("AddAttendee", ctx, eventID, userID).Return(nil).Once()
		mockRepo.On("GetByID", ctx, eventID).Return(attended, nil).Once()

		result, err := svc.Attend(ctx, userID, eventID)

		require.NoError(t, err)
		assert.True(t, result.IsAttendee(userID))
	})

	t.Run("Unattend", func(t *testing.T) {
		mockRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID}, nil).Once()
		mockRepo.On("RemoveAttendee", ctx, eventID, userID).Return(nil).Once()
		mockRepo.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID}, nil).Once()

		result, err := svc.Unattend(ctx, userID, eventID)

		require.NoError(t, err)
		assert.False(t, result.IsAttendee(userID))
		mockRepo.AssertExpectations(t)
	})
}

func TestEventService_Delete(t *testing.T) {
	mockRepo := new(mocks.EventRepository)
	svc := event.NewService(mockRepo, new(mocks.NotificationService), zerolog.Nop())
	ctx := context.Background()
	userID, eventID := uuid.New(), uuid.New()

	mockRepo.On("Delete", ctx, eventID, userID).Return(false, nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, userID, eventID), domain.ErrEventNotFound)
}
