package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"leander-social/internal/config"
	"leander-social/internal/domain"
)

// PublicPrefix is the URL path under which stored objects are served.
const PublicPrefix = "/uploads/"

type Object struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

type Service interface {
	// Upload stores the file under dir and returns its public path.
	Upload(ctx context.Context, dir string, upload domain.FileUpload) (string, error)
	Open(ctx context.Context, publicPath string) (*Object, error)
	Delete(ctx context.Context, publicPath string) error
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, dir string, upload domain.FileUpload) (string, error) {
	if s.minioClient == nil {
		return "", domain.ErrStorageUnavailable
	}

	key := objectKey(dir, upload.FileName, time.Now())
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, key, upload.Content, upload.Size, minio.PutObjectOptions{
		ContentType: upload.MimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return PublicPrefix + key, nil
}

func (s *service) Open(ctx context.Context, publicPath string) (*Object, error) {
	if s.minioClient == nil {
		return nil, domain.ErrStorageUnavailable
	}

	key, ok := keyFromPath(publicPath)
	if !ok {
		return nil, domain.ErrFileNotFound
	}

	obj, err := s.minioClient.GetObject(ctx, s.cfg.MinIOBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return &Object{ReadCloser: obj, ContentType: info.ContentType, Size: info.Size}, nil
}

func (s *service) Delete(ctx context.Context, publicPath string) error {
	if s.minioClient == nil {
		return domain.ErrStorageUnavailable
	}

	key, ok := keyFromPath(publicPath)
	if !ok {
		return domain.ErrFileNotFound
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, key, minio.RemoveObjectOptions{})
}

func objectKey(dir, fileName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(fileName))
	name := fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
	return path.Join(dir, name)
}

// keyFromPath accepts either a public path or a bare key and rejects anything
// that would escape the bucket root.
func keyFromPath(p string) (string, bool) {
	key := strings.TrimPrefix(p, PublicPrefix)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", false
		}
	}
	return key, true
}
