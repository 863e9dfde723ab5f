package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/announcement"
)

type AnnouncementHandler struct {
	announcementService announcement.Service
}

func NewAnnouncementHandler(announcementService announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAnnouncementInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.announcementService.Create(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	result, err := h.announcementService.List(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.announcementService.GetByID(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(a)
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateAnnouncementInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.announcementService.Update(c.UserContext(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(a)
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.announcementService.Delete(c.UserContext(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AnnouncementHandler) ToggleHighlight(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.announcementService.ToggleHighlight(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(a)
}
