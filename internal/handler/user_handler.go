package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	u, err := h.userService.GetByID(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	u, err := h.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *UserHandler) Follow(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	target, err := h.userService.Follow(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"following": true, "user": target})
}

func (h *UserHandler) Unfollow(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	target, err := h.userService.Unfollow(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"following": false, "user": target})
}

func (h *UserHandler) Followers(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	followers, err := h.userService.Followers(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(followers)
}

func (h *UserHandler) Following(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	following, err := h.userService.Following(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(following)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateRoleInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	u, err := h.userService.UpdateRole(c.UserContext(), id, input.Role)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *UserHandler) UploadImage(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	headers := formFiles(c, "image")
	if len(headers) == 0 {
		return middleware.BadRequest("image is required")
	}
	uploads, closeAll, err := openUploads(headers[:1])
	if err != nil {
		return err
	}
	defer closeAll()

	u, err := h.userService.UpdateImage(c.UserContext(), middleware.GetCurrentUserID(c), id, uploads[0])
	if err != nil {
		return err
	}
	return c.JSON(u)
}
