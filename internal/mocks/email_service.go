package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name, nick string) error {
	args := m.Called(ctx, toEmail, name, nick)
	return args.Error(0)
}
