package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

type eventRow struct {
	domain.Event
	authorColumns
}

type attendeeRow struct {
	EventID uuid.UUID `db:"event_id"`
	domain.UserSummary
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (event_id, user_id, title, description, date, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.UserID, event.Title, event.Description, event.Date, event.Location,
	).Scan(&event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var row eventRow
	query := `
		SELECT e.*, ` + authorSelect + `
		FROM events e
		JOIN users u ON u.user_id = e.user_id
		WHERE e.event_id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	events := []domain.Event{row.toDomain()}
	if err := r.loadAttendees(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM events`); err != nil {
		return nil, 0, err
	}

	var rows []eventRow
	query := `
		SELECT e.*, ` + authorSelect + `
		FROM events e
		JOIN users u ON u.user_id = e.user_id
		ORDER BY e.date ASC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toDomain()
	}
	if err := r.loadAttendees(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return err
}

func (r *eventRepository) loadAttendees(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(events))
	index := make(map[uuid.UUID]int, len(events))
	for i := range events {
		ids[i] = events[i].ID
		index[events[i].ID] = i
		events[i].Attendees = []domain.UserSummary{}
	}

	var rows []attendeeRow
	query := `
		SELECT a.event_id, u.user_id, u.name, u.surname, u.nick, u.image
		FROM event_attendees a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.event_id = ANY($1::uuid[])
		ORDER BY a.created_at`
	if err := r.db.SelectContext(ctx, &rows, query, uuidArray(ids)); err != nil {
		return err
	}

	for _, row := range rows {
		i := index[row.EventID]
		events[i].Attendees = append(events[i].Attendees, row.UserSummary)
	}
	return nil
}

func (row eventRow) toDomain() domain.Event {
	event := row.Event
	event.Creator = row.summary(event.UserID)
	return event
}
