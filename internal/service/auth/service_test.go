package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/mocks"
	"leander-social/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "secret", JWTExpiry: 30 * 24 * time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateUserInput{Name: "Ana", Surname: "Ruiz", Nick: "AnaR", Email: " Ana@Example.com ", Password: "secret1"}

	t.Run("Lowercases and hashes", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, nil, nil, nil, testConfig(), zerolog.Nop())

		mockRepo.On("ExistsByEmailOrNick", ctx, "ana@example.com", "anar").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ana@example.com" && u.Nick == "anar" && u.Role == string(domain.RoleUser) &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
		})).Return(nil).Once()

		user, err := svc.Register(ctx, input, nil)

		require.NoError(t, err)
		assert.Nil(t, user.Image)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, nil, nil, nil, testConfig(), zerolog.Nop())
		mockRepo.On("ExistsByEmailOrNick", ctx, "ana@example.com", "anar").Return(true, nil).Once()

		_, err := svc.Register(ctx, input, nil)

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown role", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), nil, nil, nil, testConfig(), zerolog.Nop())
		withRole := input
		withRole.Role = "ROLE_ROOT"

		_, err := svc.Register(ctx, withRole, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("Profile image is uploaded", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		mockMedia := new(mocks.MediaService)
		svc := auth.NewService(mockRepo, nil, mockMedia, nil, testConfig(), zerolog.Nop())
		image := &domain.FileUpload{FileName: "me.png", MimeType: "image/png", Size: 3, Content: strings.NewReader("png")}

		mockRepo.On("ExistsByEmailOrNick", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockMedia.On("Upload", ctx, "users", *image).Return("/uploads/users/me.png", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, err := svc.Register(ctx, input, image)

		require.NoError(t, err)
		assert.Equal(t, "/uploads/users/me.png", *user.Image)
	})

	t.Run("Losing a concurrent registration removes the uploaded image", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		mockMedia := new(mocks.MediaService)
		svc := auth.NewService(mockRepo, nil, mockMedia, nil, testConfig(), zerolog.Nop())
		image := &domain.FileUpload{FileName: "me.png", MimeType: "image/png", Size: 3, Content: strings.NewReader("png")}

		mockRepo.On("ExistsByEmailOrNick", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockMedia.On("Upload", ctx, "users", *image).Return("/uploads/users/me.png", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken).Once()
		mockMedia.On("Delete", ctx, "/uploads/users/me.png").Return(nil).Once()

		user, err := svc.Register(ctx, input, image)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		mockRepo.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
	})

	t.Run("Failed insert without image touches no storage", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		mockMedia := new(mocks.MediaService)
		svc := auth.NewService(mockRepo, nil, mockMedia, nil, testConfig(), zerolog.Nop())

		mockRepo.On("ExistsByEmailOrNick", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := svc.Register(ctx, input, nil)

		assert.EqualError(t, err, "connection reset")
		mockMedia.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Welcome email is sent", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		mockEmail := new(mocks.EmailService)
		svc := auth.NewService(mockRepo, mockEmail, nil, nil, testConfig(), zerolog.Nop())
		sent := make(chan struct{})

		mockRepo.On("ExistsByEmailOrNick", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("SendWelcomeEmail", mock.Anything, "ana@example.com", "Ana", "anar").
			Run(func(mock.Arguments) { close(sent) }).Return(nil).Once()

		_, err := svc.Register(ctx, input, nil)
		require.NoError(t, err)

		select {
		case <-sent:
		case <-time.After(time.Second):
			t.Fatal("welcome email not sent")
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash)}

	mockRepo := new(mocks.UserRepository)
	svc := auth.NewService(mockRepo, nil, nil, nil, testConfig(), zerolog.Nop())

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{Email: "ANA@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), claims.Subject)
		assert.WithinDuration(t, claims.IssuedAt.Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Second)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "nope"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo.On("GetByEmail", ctx, "who@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "who@example.com", Password: "x"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := auth.NewService(nil, nil, nil, nil, testConfig(), zerolog.Nop())
	userID := uuid.New()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	t.Run("Expired", func(t *testing.T) {
		token := sign(jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}, jwt.SigningMethodHS256, []byte("secret"))

		_, err := svc.Authenticate(token)

		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("No expiry", func(t *testing.T) {
		token := sign(jwt.RegisteredClaims{Subject: userID.String()}, jwt.SigningMethodHS256, []byte("secret"))

		_, err := svc.Authenticate(token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Other algorithm", func(t *testing.T) {
		token := sign(jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}, jwt.SigningMethodHS512, []byte("secret"))

		_, err := svc.Authenticate(token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Subject is not a uuid", func(t *testing.T) {
		token := sign(jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}, jwt.SigningMethodHS256, []byte("secret"))

		_, err := svc.Authenticate(token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Valid", func(t *testing.T) {
		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)

		id, err := svc.Authenticate(token)

		require.NoError(t, err)
		assert.Equal(t, userID, id)
	})
}
