package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/forum"
)

type ForumHandler struct {
	forumService forum.Service
}

func NewForumHandler(forumService forum.Service) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

func (h *ForumHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateForumPostInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	post, err := h.forumService.Create(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *ForumHandler) List(c *fiber.Ctx) error {
	result, err := h.forumService.List(c.UserContext(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *ForumHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.forumService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *ForumHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.forumService.Delete(c.UserContext(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ForumHandler) Answer(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.ForumAnswerInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	post, err := h.forumService.Answer(c.UserContext(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
