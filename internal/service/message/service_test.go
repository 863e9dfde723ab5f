package message_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leander-social/internal/domain"
	"leander-social/internal/mocks"
	"leander-social/internal/service/message"
)

func TestMessageService_Send(t *testing.T) {
	mockMsgRepo := new(mocks.MessageRepository)
	mockUserRepo := new(mocks.UserRepository)
	mockNotif := new(mocks.NotificationService)
	svc := message.NewService(mockMsgRepo, mockUserRepo, mockNotif, zerolog.Nop())
	ctx := context.Background()
	sender, receiver := uuid.New(), uuid.New()

	t.Run("Unknown receiver", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, receiver).Return(nil, nil).Once()

		_, err := svc.Send(ctx, sender, domain.SendMessageInput{Text: "hola", Receiver: receiver})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		mockMsgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Stores then notifies", func(t *testing.T) {
		stored := &domain.Message{
			EmitterID:  sender,
			ReceiverID: receiver,
			Text:       "hola",
			Emitter:    &domain.UserSummary{ID: sender, Nick: "ana"},
		}
		mockUserRepo.On("GetByID", ctx, receiver).Return(&domain.User{ID: receiver}, nil).Once()
		mockMsgRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.EmitterID == sender && m.ReceiverID == receiver && m.Text == "hola"
		})).Return(nil).Once()
		mockMsgRepo.On("GetByID", ctx, mock.Anything).Return(stored, nil).Once()
		mockNotif.On("NotifyMessage", ctx, stored).Return(errors.New("bus down")).Once()

		msg, err := svc.Send(ctx, sender, domain.SendMessageInput{Text: "hola", Receiver: receiver})

		require.NoError(t, err)
		assert.Equal(t, "ana", msg.Emitter.Nick)
		mockMsgRepo.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})
}

func TestMessageService_Received(t *testing.T) {
	mockMsgRepo := new(mocks.MessageRepository)
	svc := message.NewService(mockMsgRepo, new(mocks.UserRepository), new(mocks.NotificationService), zerolog.Nop())
	ctx := context.Background()
	userID := uuid.New()
	params := domain.PaginationParams{Page: 2, PageSize: 1}

	mockMsgRepo.On("ListReceived", ctx, userID, params).Return([]domain.Message{{ID: uuid.New()}}, int64(2), nil).Once()

	resp, err := svc.Received(ctx, userID, params)

	require.NoError(t, err)
	assert.True(t, resp.HasPrev)
	assert.False(t, resp.HasNext)
}

func TestMessageService_MarkViewed(t *testing.T) {
	mockMsgRepo := new(mocks.MessageRepository)
	svc := message.NewService(mockMsgRepo, new(mocks.UserRepository), new(mocks.NotificationService), zerolog.Nop())
	ctx := context.Background()
	userID := uuid.New()

	mockMsgRepo.On("MarkAllViewed", ctx, userID).Return(int64(4), nil).Once()
	mockMsgRepo.On("CountUnviewed", ctx, userID).Return(int64(0), nil).Once()

	updated, err := svc.MarkViewed(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	remaining, err := svc.UnviewedCount(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}
