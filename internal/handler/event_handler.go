package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/event"
)

type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEventInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	ev, err := h.eventService.Create(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ev)
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	result, err := h.eventService.List(c.UserContext(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	ev, err := h.eventService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ev)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.UserContext(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) Attend(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	ev, err := h.eventService.Attend(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(ev)
}

func (h *EventHandler) Unattend(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	ev, err := h.eventService.Unattend(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(ev)
}
