package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"leander-social/internal/config"
	"leander-social/internal/realtime"
	"leander-social/internal/repository"
	"leander-social/internal/service/announcement"
	"leander-social/internal/service/auth"
	"leander-social/internal/service/email"
	"leander-social/internal/service/event"
	"leander-social/internal/service/forum"
	"leander-social/internal/service/media"
	"leander-social/internal/service/message"
	"leander-social/internal/service/notification"
	"leander-social/internal/service/publication"
	"leander-social/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Publication  publication.Service
	Forum        forum.Service
	Event        event.Service
	Announcement announcement.Service
	Message      message.Service
	Notification notification.Service
	Media        media.Service
	Email        email.Service
}

func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	minioClient *minio.Client,
	publisher realtime.Publisher,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	emailService := email.NewService(cfg, logger)
	mediaService := media.NewService(minioClient, cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, publisher, cfg, logger)

	return &Services{
		Auth:         auth.NewService(repos.User, emailService, mediaService, redis, cfg, logger),
		User:         user.NewService(repos.User, mediaService, redis, logger),
		Publication:  publication.NewService(repos.Publication, mediaService, notificationService, cfg, logger),
		Forum:        forum.NewService(repos.Forum, notificationService, logger),
		Event:        event.NewService(repos.Event, notificationService, logger),
		Announcement: announcement.NewService(repos.Announcement),
		Message:      message.NewService(repos.Message, repos.User, notificationService, logger),
		Notification: notificationService,
		Media:        mediaService,
		Email:        emailService,
	}
}
