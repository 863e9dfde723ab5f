package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leander-social/internal/domain"
	"leander-social/internal/middleware"
	"leander-social/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Publication  *PublicationHandler
	Forum        *ForumHandler
	Event        *EventHandler
	Announcement *AnnouncementHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Publication:  NewPublicationHandler(services.Publication),
		Forum:        NewForumHandler(services.Forum),
		Event:        NewEventHandler(services.Event),
		Announcement: NewAnnouncementHandler(services.Announcement),
		Message:      NewMessageHandler(services.Message),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

// parseBody decodes and validates the request body into input.
func parseBody(c *fiber.Ctx, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return middleware.Validate(input)
}

// openUploads opens every file in headers. The returned closer must be called
// once the uploads have been consumed.
func openUploads(headers []*multipart.FileHeader) ([]domain.FileUpload, func(), error) {
	uploads := make([]domain.FileUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, middleware.BadRequest("Failed to read file")
		}
		files = append(files, f)

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		uploads = append(uploads, domain.FileUpload{
			FileName: fh.Filename,
			Size:     fh.Size,
			MimeType: mimeType,
			Content:  f,
		})
	}

	return uploads, closeAll, nil
}

// formFiles returns the files under field, or none when the request is not
// multipart.
func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
