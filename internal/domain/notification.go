package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID            uuid.UUID        `json:"id" db:"notification_id"`
	Type          NotificationType `json:"type" db:"type"`
	EmitterID     uuid.UUID        `json:"emitter_id" db:"emitter_id"`
	ReceiverID    uuid.UUID        `json:"receiver_id" db:"receiver_id"`
	PublicationID *uuid.UUID       `json:"publication_id,omitempty" db:"publication_id"`
	EventID       *uuid.UUID       `json:"event_id,omitempty" db:"event_id"`
	MessageID     *uuid.UUID       `json:"message_id,omitempty" db:"message_id"`
	ForumPostID   *uuid.UUID       `json:"forum_post_id,omitempty" db:"forum_post_id"`
	SourceID      *uuid.UUID       `json:"source_id,omitempty" db:"source_id"`
	Title         string           `json:"title" db:"title"`
	Message       string           `json:"message" db:"message"`
	IsRead        bool             `json:"read" db:"is_read"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`

	Emitter *UserSummary `json:"emitter,omitempty" db:"-"`
}

type NotificationType string

const (
	NotifPublication NotificationType = "publication"
	NotifLike        NotificationType = "like"
	NotifComment     NotificationType = "comment"
	NotifForum       NotificationType = "forum"
	NotifMessage     NotificationType = "message"
	NotifEvent       NotificationType = "event"
)

type NotificationsViewed struct {
	UserID       uuid.UUID `json:"userId"`
	UpdatedCount int64     `json:"updatedCount"`
}

type NewPublicationPayload struct {
	Publication *Publication `json:"publication"`
	Author      *UserSummary `json:"author"`
}
