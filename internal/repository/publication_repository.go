package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type PublicationRepository interface {
	Create(ctx context.Context, pub *domain.Publication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Publication, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Publication, error)
	Update(ctx context.Context, pub *domain.Publication) (bool, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	AddLike(ctx context.Context, like *domain.PublicationLike) (bool, error)
	RemoveLike(ctx context.Context, publicationID, userID uuid.UUID) (*domain.PublicationLike, error)

	AddComment(ctx context.Context, comment *domain.PublicationComment) error
	GetComment(ctx context.Context, publicationID, commentID uuid.UUID) (*domain.PublicationComment, error)
	UpdateComment(ctx context.Context, comment *domain.PublicationComment) error
	DeleteComment(ctx context.Context, publicationID, commentID uuid.UUID) error
}

type publicationRepository struct {
	db *sqlx.DB
}

func NewPublicationRepository(db *sqlx.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

type publicationRow struct {
	domain.Publication
	authorColumns
}

type commentRow struct {
	domain.PublicationComment
	authorColumns
}

func (r *publicationRepository) Create(ctx context.Context, pub *domain.Publication) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO publications (publication_id, user_id, title, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	if err := tx.QueryRowxContext(ctx, query, pub.ID, pub.UserID, pub.Title, pub.Text).
		Scan(&pub.CreatedAt, &pub.UpdatedAt); err != nil {
		return err
	}

	fileQuery := `
		INSERT INTO publication_files (file_id, publication_id, position, path, original_name, mime_type, file_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range pub.Files {
		f := &pub.Files[i]
		f.PublicationID = pub.ID
		f.Position = i
		if _, err := tx.ExecContext(ctx, fileQuery,
			f.ID, f.PublicationID, f.Position, f.Path, f.OriginalName, f.MimeType, f.FileType,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *publicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	var row publicationRow
	query := `
		SELECT p.*, ` + authorSelect + `
		FROM publications p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.publication_id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pubs := []domain.Publication{row.toDomain()}
	if err := r.hydrate(ctx, pubs); err != nil {
		return nil, err
	}
	return &pubs[0], nil
}

func (r *publicationRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Publication, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM publications`); err != nil {
		return nil, 0, err
	}

	var rows []publicationRow
	query := `
		SELECT p.*, ` + authorSelect + `
		FROM publications p
		JOIN users u ON u.user_id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	pubs := publicationsFromRows(rows)
	if err := r.hydrate(ctx, pubs); err != nil {
		return nil, 0, err
	}
	return pubs, total, nil
}

func (r *publicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Publication, error) {
	var rows []publicationRow
	query := `
		SELECT p.*, ` + authorSelect + `
		FROM publications p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	pubs := publicationsFromRows(rows)
	if err := r.hydrate(ctx, pubs); err != nil {
		return nil, err
	}
	return pubs, nil
}

func (r *publicationRepository) Update(ctx context.Context, pub *domain.Publication) (bool, error) {
	query := `
		UPDATE publications SET title = $3, text = $4, updated_at = NOW()
		WHERE publication_id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, pub.ID, pub.UserID, pub.Title, pub.Text).Scan(&pub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *publicationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM publications WHERE publication_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// AddLike reports false when the user already likes the publication.
func (r *publicationRepository) AddLike(ctx context.Context, like *domain.PublicationLike) (bool, error) {
	query := `
		INSERT INTO publication_likes (like_id, publication_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (publication_id, user_id) DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query, like.ID, like.PublicationID, like.UserID).Scan(&like.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// RemoveLike returns the removed like, or nil when there was none.
func (r *publicationRepository) RemoveLike(ctx context.Context, publicationID, userID uuid.UUID) (*domain.PublicationLike, error) {
	var like domain.PublicationLike
	query := `
		DELETE FROM publication_likes
		WHERE publication_id = $1 AND user_id = $2
		RETURNING *`

	err := r.db.GetContext(ctx, &like, query, publicationID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *publicationRepository) AddComment(ctx context.Context, comment *domain.PublicationComment) error {
	query := `
		INSERT INTO publication_comments (comment_id, publication_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PublicationID, comment.UserID, comment.Text,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *publicationRepository) GetComment(ctx context.Context, publicationID, commentID uuid.UUID) (*domain.PublicationComment, error) {
	var row commentRow
	query := `
		SELECT c.*, ` + authorSelect + `
		FROM publication_comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.publication_id = $1 AND c.comment_id = $2`

	err := r.db.GetContext(ctx, &row, query, publicationID, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	comment := row.toDomain()
	return &comment, nil
}

func (r *publicationRepository) UpdateComment(ctx context.Context, comment *domain.PublicationComment) error {
	query := `
		UPDATE publication_comments SET text = $3, updated_at = NOW()
		WHERE publication_id = $1 AND comment_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, comment.PublicationID, comment.ID, comment.Text).Scan(&comment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCommentNotFound
	}
	return err
}

func (r *publicationRepository) DeleteComment(ctx context.Context, publicationID, commentID uuid.UUID) error {
	query := `DELETE FROM publication_comments WHERE publication_id = $1 AND comment_id = $2`
	result, err := r.db.ExecContext(ctx, query, publicationID, commentID)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrCommentNotFound)
}

// hydrate loads files, likes and comments for every publication in pubs with
// one query per child table.
func (r *publicationRepository) hydrate(ctx context.Context, pubs []domain.Publication) error {
	if len(pubs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(pubs))
	index := make(map[uuid.UUID]int, len(pubs))
	for i := range pubs {
		ids[i] = pubs[i].ID
		index[pubs[i].ID] = i
		pubs[i].Files = []domain.PublicationFile{}
		pubs[i].Likes = []uuid.UUID{}
		pubs[i].Comments = []domain.PublicationComment{}
	}

	var files []domain.PublicationFile
	if err := r.db.SelectContext(ctx, &files,
		`SELECT * FROM publication_files WHERE publication_id = ANY($1::uuid[]) ORDER BY position`,
		uuidArray(ids)); err != nil {
		return err
	}
	for _, f := range files {
		i := index[f.PublicationID]
		pubs[i].Files = append(pubs[i].Files, f)
	}

	var likes []domain.PublicationLike
	if err := r.db.SelectContext(ctx, &likes,
		`SELECT * FROM publication_likes WHERE publication_id = ANY($1::uuid[]) ORDER BY created_at`,
		uuidArray(ids)); err != nil {
		return err
	}
	for _, l := range likes {
		i := index[l.PublicationID]
		pubs[i].Likes = append(pubs[i].Likes, l.UserID)
	}

	var comments []commentRow
	query := `
		SELECT c.*, ` + authorSelect + `
		FROM publication_comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.publication_id = ANY($1::uuid[])
		ORDER BY c.created_at`
	if err := r.db.SelectContext(ctx, &comments, query, uuidArray(ids)); err != nil {
		return err
	}
	for _, c := range comments {
		i := index[c.PublicationID]
		pubs[i].Comments = append(pubs[i].Comments, c.toDomain())
	}

	return nil
}

func (row publicationRow) toDomain() domain.Publication {
	pub := row.Publication
	pub.Author = row.summary(pub.UserID)
	return pub
}

func (row commentRow) toDomain() domain.PublicationComment {
	comment := row.PublicationComment
	comment.User = row.summary(comment.UserID)
	return comment
}

func publicationsFromRows(rows []publicationRow) []domain.Publication {
	pubs := make([]domain.Publication, len(rows))
	for i, row := range rows {
		pubs[i] = row.toDomain()
	}
	return pubs
}
