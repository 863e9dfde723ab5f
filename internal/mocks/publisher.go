package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leander-social/internal/realtime"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, recipients []uuid.UUID, ev realtime.Event) error {
	args := m.Called(ctx, recipients, ev)
	return args.Error(0)
}
