package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
	"leander-social/internal/repository"
	"leander-social/internal/service/auth"
	"leander-social/internal/service/media"
)

const directoryTTL = 5 * time.Minute

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.User, error)
	Unfollow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.User, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
	Following(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*domain.User, error)
	UpdateImage(ctx context.Context, actorID, userID uuid.UUID, upload domain.FileUpload) (*domain.User, error)
}

type service struct {
	userRepo     repository.UserRepository
	mediaService media.Service
	redis        *redis.Client
	logger       zerolog.Logger
}

func NewService(userRepo repository.UserRepository, mediaService media.Service, redis *redis.Client, logger zerolog.Logger) Service {
	return &service{
		userRepo:     userRepo,
		mediaService: mediaService,
		redis:        redis,
		logger:       logger.With().Str("component", "user").Logger(),
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, auth.UserDirectoryCacheKey).Result(); err == nil {
			var users []domain.User
			if json.Unmarshal([]byte(cached), &users) == nil {
				return users, nil
			}
		}
	}

	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	if s.redis != nil {
		if usersJSON, err := json.Marshal(users); err == nil {
			_ = s.redis.Set(ctx, auth.UserDirectoryCacheKey, usersJSON, directoryTTL).Err()
		}
	}

	return users, nil
}

func (s *service) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.User, error) {
	if followerID == targetID {
		return nil, domain.ErrSelfFollow
	}

	target, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Follow(ctx, followerID, targetID); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("follower_id", followerID.String()).Str("followed_id", targetID.String()).Msg("follow")
	return target, nil
}

func (s *service) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.User, error) {
	if followerID == targetID {
		return nil, domain.ErrSelfFollow
	}

	target, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *service) Followers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowers(ctx, userID)
}

func (s *service) Following(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowing(ctx, userID)
}

func (s *service) UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*domain.User, error) {
	if !domain.UserRole(role).IsValid() {
		return nil, domain.ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)

	return s.GetByID(ctx, userID)
}

func (s *service) UpdateImage(ctx context.Context, actorID, userID uuid.UUID, upload domain.FileUpload) (*domain.User, error) {
	if actorID != userID {
		return nil, domain.ErrForbidden
	}
	if !media.IsProfileImage(upload.MimeType) {
		return nil, domain.ErrUnsupportedFileType
	}

	existing, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.mediaService.Upload(ctx, "users", upload)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateImage(ctx, userID, path); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)

	if existing.Image != nil && *existing.Image != "" {
		if err := s.mediaService.Delete(ctx, *existing.Image); err != nil {
			s.logger.Warn().Err(err).Str("path", *existing.Image).Msg("failed to remove previous profile image")
		}
	}

	existing.Image = &path
	return existing, nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, auth.UserDirectoryCacheKey).Err()
	}
}
