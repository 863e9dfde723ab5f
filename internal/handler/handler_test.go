package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/mocks"
	"leander-social/internal/service/media"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zerolog.Nop())})
}

// asUser stands in for the access gate.
func asUser(id uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDContextKey, id)
		return c.Next()
	}
}

func TestMediaHandler_Serve(t *testing.T) {
	mockMedia := new(mocks.MediaService)
	h := NewMediaHandler(mockMedia)
	app := newTestApp()
	app.Get("/uploads/*", h.Serve)

	t.Run("Streams the object", func(t *testing.T) {
		obj := &media.Object{
			ReadCloser:  io.NopCloser(strings.NewReader("PNGDATA")),
			ContentType: "image/png",
			Size:        7,
		}
		mockMedia.On("Open", mock.Anything, "/uploads/users/1-a.png").Return(obj, nil).Once()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/uploads/users/1-a.png", nil))
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, "PNGDATA", string(body))
	})

	t.Run("Missing object", func(t *testing.T) {
		mockMedia.On("Open", mock.Anything, "/uploads/users/none.png").Return(nil, domain.ErrFileNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/uploads/users/none.png", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestNotificationHandler(t *testing.T) {
	mockNotif := new(mocks.NotificationService)
	h := NewNotificationHandler(mockNotif)
	userID := uuid.New()

	app := newTestApp()
	app.Use(asUser(userID))
	app.Get("/notifications", h.List)
	app.Put("/viewed-notifications", h.MarkAllAsRead)
	app.Put("/notification/:id/read", h.MarkAsRead)

	t.Run("List unread only", func(t *testing.T) {
		expected := domain.PaginationParams{Page: 2, PageSize: 5}
		mockNotif.On("List", mock.Anything, userID, true, expected).
			Return(domain.NewPaginatedResponse([]domain.Notification{{ID: uuid.New()}}, 2, 5, 6), nil).Once()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/notifications?unread_only=true&page=2&page_size=5", nil))
		require.NoError(t, err)

		var body domain.PaginatedResponse[domain.Notification]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, body.Data, 1)
		assert.True(t, body.HasPrev)
	})

	t.Run("Mark all read", func(t *testing.T) {
		mockNotif.On("MarkAllAsRead", mock.Anything, userID).Return(int64(3), nil).Once()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/viewed-notifications", nil))
		require.NoError(t, err)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(3), body["updatedCount"])
	})

	t.Run("Mark one read rejects malformed id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/notification/not-a-uuid/read", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		mockNotif.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Mark someone else's notification", func(t *testing.T) {
		id := uuid.New()
		mockNotif.On("MarkAsRead", mock.Anything, userID, id).Return(domain.ErrNotificationNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/notification/"+id.String()+"/read", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetPaginationParams(t *testing.T) {
	app := fiber.New()
	var got domain.PaginationParams
	app.Get("/", func(c *fiber.Ctx) error {
		got = getPaginationParams(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?page=-1&page_size=500", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 100, got.PageSize)

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/?page=9223372036854775807&page_size=100", nil))
	require.NoError(t, err)

	assert.Equal(t, domain.MaxPage, got.Page)
	assert.GreaterOrEqual(t, got.Offset(), 0)
}
