package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"leander-social/internal/domain"
	"leander-social/internal/handler"
	"leander-social/internal/middleware"
	"leander-social/internal/realtime"
	"leander-social/internal/service"
)

func setupRoutes(app *fiber.App, h *handler.Handlers, s *service.Services, registry *realtime.Registry, log zerolog.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": registry.Count()})
	})

	app.Get("/socket", realtime.UpgradeRequired, realtime.NewHandler(registry, s.Auth, log))
	app.Get("/uploads/*", h.Media.Serve)

	api := app.Group("/api")
	api.Get("/uploads/*", h.Media.Serve)
	api.Post("/register", h.Auth.Register)
	api.Post("/login", h.Auth.Login)

	protected := api.Group("", middleware.AuthRequired(s.Auth))

	protected.Get("/me", h.User.Me)
	protected.Get("/users", h.User.List)
	protected.Get("/user/:id", h.User.Get)
	protected.Post("/follow/:id", h.User.Follow)
	protected.Post("/unfollow/:id", h.User.Unfollow)
	protected.Get("/followers/:id", h.User.Followers)
	protected.Get("/following/:id", h.User.Following)
	protected.Put("/user/role/:id", middleware.RequireRole(s.User, domain.RoleAdmin), h.User.UpdateRole)
	protected.Post("/upload-image-user/:id", h.User.UploadImage)

	protected.Post("/publication", h.Publication.Create)
	protected.Get("/publications", h.Publication.List)
	protected.Get("/my-publications", h.Publication.ListMine)
	protected.Put("/publication/like/:id", h.Publication.Like)
	protected.Put("/publication/unlike/:id", h.Publication.Unlike)
	protected.Post("/publication/comment/:id", h.Publication.AddComment)
	protected.Delete("/publication/comment/:id/:commentId", h.Publication.DeleteComment)
	protected.Put("/publication/:id/comment/:commentId", h.Publication.UpdateComment)
	protected.Get("/publication/:id", h.Publication.Get)
	protected.Put("/publication/:id", h.Publication.Update)
	protected.Delete("/publication/:id", h.Publication.Delete)

	protected.Post("/forum", h.Forum.Create)
	protected.Get("/forum", h.Forum.List)
	protected.Get("/forum/:id", h.Forum.Get)
	protected.Delete("/forum/:id", h.Forum.Delete)
	protected.Post("/forum/:id/answer", h.Forum.Answer)

	protected.Post("/event", h.Event.Create)
	protected.Get("/events", h.Event.List)
	protected.Put("/event/attend/:id", h.Event.Attend)
	protected.Put("/event/unattend/:id", h.Event.Unattend)
	protected.Get("/event/:id", h.Event.Get)
	protected.Delete("/event/:id", h.Event.Delete)

	protected.Post("/message", h.Message.Send)
	protected.Get("/received-messages", h.Message.Received)
	protected.Get("/emitted-messages", h.Message.Emitted)
	protected.Get("/unviewed-messages", h.Message.Unviewed)
	protected.Put("/viewed-messages", h.Message.MarkViewed)

	protected.Get("/notifications", h.Notification.List)
	protected.Get("/unviewed-notifications", h.Notification.GetUnreadCount)
	protected.Put("/viewed-notifications", h.Notification.MarkAllAsRead)
	protected.Put("/notification/:id/read", h.Notification.MarkAsRead)

	protected.Post("/announcement", h.Announcement.Create)
	protected.Get("/announcements", h.Announcement.List)
	protected.Put("/announcement/highlight/:id", h.Announcement.ToggleHighlight)
	protected.Get("/announcement/:id", h.Announcement.Get)
	protected.Put("/announcement/:id", h.Announcement.Update)
	protected.Delete("/announcement/:id", h.Announcement.Delete)
}
