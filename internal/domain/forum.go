package domain

import (
	"time"

	"github.com/google/uuid"
)

type ForumPost struct {
	ID        uuid.UUID `json:"id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author  *UserSummary  `json:"user,omitempty" db:"-"`
	Answers []ForumAnswer `json:"answers" db:"-"`
}

type ForumAnswer struct {
	ID        uuid.UUID `json:"id" db:"answer_id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

type CreateForumPostInput struct {
	Title string `json:"title" validate:"required,max=200"`
	Text  string `json:"text" validate:"required"`
}

type ForumAnswerInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}
