package domain

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `json:"id" db:"event_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Creator   *UserSummary  `json:"user,omitempty" db:"-"`
	Attendees []UserSummary `json:"attendees" db:"-"`
}

func (e *Event) IsAttendee(userID uuid.UUID) bool {
	for _, a := range e.Attendees {
		if a.ID == userID {
			return true
		}
	}
	return false
}

type CreateEventInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	Date        *time.Time `json:"date" validate:"required"`
	Location    string     `json:"location" validate:"required,max=200"`
}
