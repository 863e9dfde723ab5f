package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service/publication"
)

type PublicationHandler struct {
	pubService publication.Service
}

func NewPublicationHandler(pubService publication.Service) *PublicationHandler {
	return &PublicationHandler{pubService: pubService}
}

func (h *PublicationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePublicationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	uploads, closeAll, err := openUploads(formFiles(c, "files"))
	if err != nil {
		return err
	}
	defer closeAll()

	pub, err := h.pubService.Create(c.UserContext(), middleware.GetCurrentUserID(c), input, uploads)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(pub)
}

func (h *PublicationHandler) List(c *fiber.Ctx) error {
	result, err := h.pubService.List(c.UserContext(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *PublicationHandler) ListMine(c *fiber.Ctx) error {
	pubs, err := h.pubService.ListByUser(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(pubs)
}

func (h *PublicationHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	pub, err := h.pubService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(pub)
}

func (h *PublicationHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdatePublicationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	pub, err := h.pubService.Update(c.UserContext(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(pub)
}

func (h *PublicationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.pubService.Delete(c.UserContext(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PublicationHandler) Like(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	pub, err := h.pubService.Like(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(pub)
}

func (h *PublicationHandler) Unlike(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	pub, err := h.pubService.Unlike(c.UserContext(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(pub)
}

func (h *PublicationHandler) AddComment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	comment, err := h.pubService.AddComment(c.UserContext(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *PublicationHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := paramUUID(c, "commentId")
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	comment, err := h.pubService.UpdateComment(c.UserContext(), middleware.GetCurrentUserID(c), id, commentID, input)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *PublicationHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := paramUUID(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.pubService.DeleteComment(c.UserContext(), middleware.GetCurrentUserID(c), id, commentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
