package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/message"
)

type MessageHandler struct {
	msgService message.Service
}

func NewMessageHandler(msgService message.Service) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var input domain.SendMessageInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	msg, err := h.msgService.Send(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) Received(c *fiber.Ctx) error {
	result, err := h.msgService.Received(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *MessageHandler) Emitted(c *fiber.Ctx) error {
	result, err := h.msgService.Emitted(c.UserContext(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *MessageHandler) Unviewed(c *fiber.Ctx) error {
	count, err := h.msgService.UnviewedCount(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unviewed": count})
}

func (h *MessageHandler) MarkViewed(c *fiber.Ctx) error {
	count, err := h.msgService.MarkViewed(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"updatedCount": count})
}
