package handler

import (
	"github.com/gofiber/fiber/v2"

	"leander-social/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Serve streams a stored object addressed by its public /uploads path.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	obj, err := h.mediaService.Open(c.UserContext(), media.PublicPrefix+c.Params("*"))
	if err != nil {
		return err
	}

	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")

	size := -1
	if obj.Size > 0 {
		size = int(obj.Size)
	}
	return c.SendStream(obj, size)
}
