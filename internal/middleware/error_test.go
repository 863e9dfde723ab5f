package middleware_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"fiber error", middleware.Conflict("taken"), fiber.StatusConflict, "CONFLICT", "taken"},
		{"wrapped domain error", fmt.Errorf("load: %w", domain.ErrEventNotFound), fiber.StatusNotFound, "NOT_FOUND", domain.ErrEventNotFound.Error()},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error()},
		{"unknown error hides detail", errors.New("pq: connection refused"), fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zerolog.Nop())})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)

			body := decodeError(t, resp.Body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Len(t, body.TraceID, 8)
		})
	}
}

func TestValidate(t *testing.T) {
	err := middleware.Validate(domain.CreateUserInput{Name: "Ana", Surname: "Ruiz", Nick: "ana", Email: "ana@example.com", Password: "123"})

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Equal(t, "password must be at least 6", fiberErr.Message)
}
