package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	ListVisible(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error)
	Update(ctx context.Context, announcement *domain.Announcement) (bool, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

type announcementRow struct {
	domain.Announcement
	authorColumns
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (announcement_id, user_id, title, content, is_public, is_highlighted, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		a.ID, a.UserID, a.Title, a.Content, a.IsPublic, a.IsHighlighted, a.ExpiresAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var row announcementRow
	query := `
		SELECT a.*, ` + authorSelect + `
		FROM announcements a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.announcement_id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	announcement := row.toDomain()
	return &announcement, nil
}

// ListVisible returns public unexpired announcements plus every announcement
// owned by the viewer, highlighted first.
func (r *announcementRepository) ListVisible(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	params.Validate()

	where := `WHERE (a.is_public = true AND (a.expires_at IS NULL OR a.expires_at > NOW())) OR a.user_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM announcements a `+where, viewerID); err != nil {
		return nil, 0, err
	}

	var rows []announcementRow
	query := `
		SELECT a.*, ` + authorSelect + `
		FROM announcements a
		JOIN users u ON u.user_id = a.user_id
		` + where + `
		ORDER BY a.is_highlighted DESC, a.created_at DESC
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, viewerID, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	announcements := make([]domain.Announcement, len(rows))
	for i, row := range rows {
		announcements[i] = row.toDomain()
	}
	return announcements, total, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *domain.Announcement) (bool, error) {
	query := `
		UPDATE announcements
		SET title = $3, content = $4, is_public = $5, is_highlighted = $6, expires_at = $7, updated_at = NOW()
		WHERE announcement_id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID, a.UserID, a.Title, a.Content, a.IsPublic, a.IsHighlighted, a.ExpiresAt,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *announcementRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE announcement_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (row announcementRow) toDomain() domain.Announcement {
	a := row.Announcement
	a.Owner = row.summary(a.UserID)
	return a
}
