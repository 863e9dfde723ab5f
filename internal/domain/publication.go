package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
	FileTypeOther    FileType = "other"
)

type Publication struct {
	ID        uuid.UUID `json:"id" db:"publication_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Author   *UserSummary         `json:"user,omitempty" db:"-"`
	Files    []PublicationFile    `json:"files" db:"-"`
	Likes    []uuid.UUID          `json:"likes" db:"-"`
	Comments []PublicationComment `json:"comments" db:"-"`
}

func (p *Publication) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

type PublicationFile struct {
	ID            uuid.UUID `json:"id" db:"file_id"`
	PublicationID uuid.UUID `json:"-" db:"publication_id"`
	Position      int       `json:"-" db:"position"`
	Path          string    `json:"path" db:"path"`
	OriginalName  string    `json:"original_name" db:"original_name"`
	MimeType      string    `json:"mime_type" db:"mime_type"`
	FileType      FileType  `json:"file_type" db:"file_type"`
}

type PublicationLike struct {
	ID            uuid.UUID `json:"id" db:"like_id"`
	PublicationID uuid.UUID `json:"publication_id" db:"publication_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type PublicationComment struct {
	ID            uuid.UUID `json:"id" db:"comment_id"`
	PublicationID uuid.UUID `json:"publication_id" db:"publication_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Text          string    `json:"text" db:"text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

type CreatePublicationInput struct {
	Title string `json:"title" form:"title" validate:"required,max=200"`
	Text  string `json:"text" form:"text" validate:"required"`
}

type UpdatePublicationInput struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Text  *string `json:"text" validate:"omitempty,min=1"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// FileUpload is one incoming file of a multipart request.
type FileUpload struct {
	FileName string
	Size     int64
	MimeType string
	Content  io.Reader
}
