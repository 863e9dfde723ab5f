package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leander-social/internal/domain"
	"leander-social/internal/service/media"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) Upload(ctx context.Context, dir string, upload domain.FileUpload) (string, error) {
	args := m.Called(ctx, dir, upload)
	return args.String(0), args.Error(1)
}

func (m *MediaService) Open(ctx context.Context, publicPath string) (*media.Object, error) {
	args := m.Called(ctx, publicPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Object), args.Error(1)
}

func (m *MediaService) Delete(ctx context.Context, publicPath string) error {
	args := m.Called(ctx, publicPath)
	return args.Error(0)
}
