package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, receiverID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteBySource(ctx context.Context, notifType domain.NotificationType, sourceID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

type notificationRow struct {
	domain.Notification
	authorColumns
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, type, emitter_id, receiver_id, publication_id,
			event_id, message_id, forum_post_id, source_id, title, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.Type, notif.EmitterID, notif.ReceiverID, notif.PublicationID,
		notif.EventID, notif.MessageID, notif.ForumPostID, notif.SourceID, notif.Title, notif.Message,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`
	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	filter := `n.receiver_id = $1`
	if unreadOnly {
		filter += ` AND n.is_read = false`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications n WHERE `+filter, userID); err != nil {
		return nil, 0, err
	}

	var rows []notificationRow
	query := `
		SELECT n.*, ` + authorSelect + `
		FROM notifications n
		JOIN users u ON u.user_id = n.emitter_id
		WHERE ` + filter + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	notifications := make([]domain.Notification, len(rows))
	for i, row := range rows {
		notif := row.Notification
		notif.Emitter = row.summary(notif.EmitterID)
		notifications[i] = notif
	}
	return notifications, total, nil
}

// MarkAsRead only touches the row when it belongs to receiverID.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, receiverID uuid.UUID) (bool, error) {
	query := `UPDATE notifications SET is_read = true WHERE notification_id = $1 AND receiver_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, receiverID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = true WHERE receiver_id = $1 AND is_read = false`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) DeleteBySource(ctx context.Context, notifType domain.NotificationType, sourceID uuid.UUID) (int64, error) {
	query := `DELETE FROM notifications WHERE type = $1 AND source_id = $2`
	result, err := r.db.ExecContext(ctx, query, notifType, sourceID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
