package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"leander-social/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Publication  PublicationRepository
	Forum        ForumRepository
	Event        EventRepository
	Announcement AnnouncementRepository
	Message      MessageRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Publication:  NewPublicationRepository(db),
		Forum:        NewForumRepository(db),
		Event:        NewEventRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// authorColumns is scanned from the joined users row aliased as author_*.
type authorColumns struct {
	AuthorName    string  `db:"author_name"`
	AuthorSurname string  `db:"author_surname"`
	AuthorNick    string  `db:"author_nick"`
	AuthorImage   *string `db:"author_image"`
}

const authorSelect = `u.name AS author_name, u.surname AS author_surname, u.nick AS author_nick, u.image AS author_image`

func (a authorColumns) summary(id uuid.UUID) *domain.UserSummary {
	return &domain.UserSummary{
		ID:      id,
		Name:    a.AuthorName,
		Surname: a.AuthorSurname,
		Nick:    a.AuthorNick,
		Image:   a.AuthorImage,
	}
}

func uuidArray(ids []uuid.UUID) interface{} {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return pq.Array(values)
}

// uniqueViolation reports whether err is a PostgreSQL unique_violation.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
