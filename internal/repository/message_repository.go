package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListReceived(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	ListEmitted(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	CountUnviewed(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllViewed(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

type messageRow struct {
	domain.Message
	EmitterName     string  `db:"emitter_name"`
	EmitterSurname  string  `db:"emitter_surname"`
	EmitterNick     string  `db:"emitter_nick"`
	EmitterImage    *string `db:"emitter_image"`
	ReceiverName    string  `db:"receiver_name"`
	ReceiverSurname string  `db:"receiver_surname"`
	ReceiverNick    string  `db:"receiver_nick"`
	ReceiverImage   *string `db:"receiver_image"`
}

const messageSelect = `
	SELECT m.*,
		e.name AS emitter_name, e.surname AS emitter_surname, e.nick AS emitter_nick, e.image AS emitter_image,
		r.name AS receiver_name, r.surname AS receiver_surname, r.nick AS receiver_nick, r.image AS receiver_image
	FROM messages m
	JOIN users e ON e.user_id = m.emitter_id
	JOIN users r ON r.user_id = m.receiver_id`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (message_id, emitter_id, receiver_id, text, viewed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.EmitterID, msg.ReceiverID, msg.Text, msg.Viewed,
	).Scan(&msg.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var row messageRow
	err := r.db.GetContext(ctx, &row, messageSelect+` WHERE m.message_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msg := row.toDomain()
	return &msg, nil
}

func (r *messageRepository) ListReceived(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, "receiver_id", userID, params)
}

func (r *messageRepository) ListEmitted(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	return r.list(ctx, "emitter_id", userID, params)
}

// list filters on column, which is always one of the two fixed identifiers above.
func (r *messageRepository) list(ctx context.Context, column string, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM messages WHERE `+column+` = $1`, userID); err != nil {
		return nil, 0, err
	}

	var rows []messageRow
	query := messageSelect + `
		WHERE m.` + column + ` = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	messages := make([]domain.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toDomain()
	}
	return messages, total, nil
}

func (r *messageRepository) CountUnviewed(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND viewed = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *messageRepository) MarkAllViewed(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE messages SET viewed = true WHERE receiver_id = $1 AND viewed = false`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (row messageRow) toDomain() domain.Message {
	msg := row.Message
	msg.Emitter = &domain.UserSummary{
		ID:      msg.EmitterID,
		Name:    row.EmitterName,
		Surname: row.EmitterSurname,
		Nick:    row.EmitterNick,
		Image:   row.EmitterImage,
	}
	msg.Receiver = &domain.UserSummary{
		ID:      msg.ReceiverID,
		Name:    row.ReceiverName,
		Surname: row.ReceiverSurname,
		Nick:    row.ReceiverNick,
		Image:   row.ReceiverImage,
	}
	return msg
}
