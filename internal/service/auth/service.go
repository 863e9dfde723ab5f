package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/repository"
	"leander-social/internal/service/email"
	"leander-social/internal/service/media"
)

// UserDirectoryCacheKey holds the cached user listing; registration invalidates it.
const UserDirectoryCacheKey = "users:directory"

type Service interface {
	Register(ctx context.Context, input domain.CreateUserInput, image *domain.FileUpload) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error)
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (*Claims, error)
	Authenticate(token string) (uuid.UUID, error)
}

// Claims carries the subject id with issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type service struct {
	userRepo     repository.UserRepository
	emailService email.Service
	mediaService media.Service
	redis        *redis.Client
	cfg          *config.Config
	logger       zerolog.Logger
}

func NewService(
	userRepo repository.UserRepository,
	emailService email.Service,
	mediaService media.Service,
	redis *redis.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) Service {
	return &service{
		userRepo:     userRepo,
		emailService: emailService,
		mediaService: mediaService,
		redis:        redis,
		cfg:          cfg,
		logger:       logger.With().Str("component", "auth").Logger(),
	}
}

func (s *service) Register(ctx context.Context, input domain.CreateUserInput, image *domain.FileUpload) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Nick = strings.ToLower(strings.TrimSpace(input.Nick))

	role := domain.RoleUser
	if input.Role != "" {
		role = domain.UserRole(input.Role)
		if !role.IsValid() {
			return nil, domain.ErrInvalidRole
		}
	}

	exists, err := s.userRepo.ExistsByEmailOrNick(ctx, input.Email, input.Nick)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Surname:      input.Surname,
		Nick:         input.Nick,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         string(role),
	}

	if image != nil {
		if !media.IsProfileImage(image.MimeType) {
			return nil, domain.ErrUnsupportedFileType
		}
		path, err := s.mediaService.Upload(ctx, "users", *image)
		if err != nil {
			return nil, err
		}
		user.Image = &path
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if user.Image != nil {
			if delErr := s.mediaService.Delete(ctx, *user.Image); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *user.Image).Msg("failed to remove orphaned profile image")
			}
		}
		return nil, err
	}

	if s.redis != nil {
		s.redis.Del(ctx, UserDirectoryCacheKey)
	}

	if s.emailService != nil {
		go func() {
			if err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.Name, user.Nick); err != nil {
				s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send welcome email")
			}
		}()
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (s *service) Authenticate(tokenString string) (uuid.UUID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID()
}
