package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register accepts JSON or multipart; a multipart request may carry a profile
// image under "image".
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	var image *domain.FileUpload
	if headers := formFiles(c, "image"); len(headers) > 0 {
		uploads, closeAll, err := openUploads(headers[:1])
		if err != nil {
			return err
		}
		defer closeAll()
		image = &uploads[0]
	}

	user, err := h.authService.Register(c.UserContext(), input, image)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(domain.AuthResponse{User: user, Token: token})
}
