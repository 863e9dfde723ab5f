package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var domainStatus = []struct {
	err    error
	status int
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrPublicationNotFound, fiber.StatusNotFound},
	{domain.ErrCommentNotFound, fiber.StatusNotFound},
	{domain.ErrForumPostNotFound, fiber.StatusNotFound},
	{domain.ErrEventNotFound, fiber.StatusNotFound},
	{domain.ErrAnnouncementNotFound, fiber.StatusNotFound},
	{domain.ErrNotificationNotFound, fiber.StatusNotFound},
	{domain.ErrFileNotFound, fiber.StatusNotFound},
	{domain.ErrEmailTaken, fiber.StatusConflict},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden},
	{domain.ErrSelfFollow, fiber.StatusBadRequest},
	{domain.ErrInvalidRole, fiber.StatusBadRequest},
	{domain.ErrUnsupportedFileType, fiber.StatusBadRequest},
	{domain.ErrTooManyFiles, fiber.StatusBadRequest},
	{domain.ErrStorageUnavailable, fiber.StatusServiceUnavailable},
}

// NewErrorHandler renders every error as an ErrorResponse. Domain errors map
// to their status; anything else is a 500 whose detail only reaches the log.
func NewErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		default:
			for _, m := range domainStatus {
				if errors.Is(err, m.err) {
					code = m.status
					message = m.err.Error()
					break
				}
			}
		}

		traceID := uuid.New().String()[:8]
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).
				Str("trace_id", traceID).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode(code),
			Message: message,
			TraceID: traceID,
		})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
