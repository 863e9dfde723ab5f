package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         uuid.UUID `json:"id" db:"message_id"`
	EmitterID  uuid.UUID `json:"emitter_id" db:"emitter_id"`
	ReceiverID uuid.UUID `json:"receiver_id" db:"receiver_id"`
	Text       string    `json:"text" db:"text"`
	Viewed     bool      `json:"viewed" db:"viewed"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Emitter  *UserSummary `json:"emitter,omitempty" db:"-"`
	Receiver *UserSummary `json:"receiver,omitempty" db:"-"`
}

type SendMessageInput struct {
	Text     string    `json:"text" validate:"required,max=5000"`
	Receiver uuid.UUID `json:"receiver" validate:"required"`
}
