package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID            uuid.UUID  `json:"id" db:"announcement_id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	Content       string     `json:"content" db:"content"`
	IsPublic      bool       `json:"is_public" db:"is_public"`
	IsHighlighted bool       `json:"is_highlighted" db:"is_highlighted"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	Owner *UserSummary `json:"user,omitempty" db:"-"`
}

func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

type CreateAnnouncementInput struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Content       string     `json:"content" validate:"required"`
	IsPublic      *bool      `json:"is_public"`
	IsHighlighted *bool      `json:"is_highlighted"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type UpdateAnnouncementInput struct {
	Title         *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Content       *string      `json:"content" validate:"omitempty,min=1"`
	IsPublic      *bool        `json:"is_public"`
	IsHighlighted *bool        `json:"is_highlighted"`
	ExpiresAt     NullableTime `json:"expires_at"`
}

// NullableTime tells an absent JSON field apart from an explicit null.
type NullableTime struct {
	Value *time.Time
	Set   bool
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}
