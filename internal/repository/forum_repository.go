package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type ForumRepository interface {
	Create(ctx context.Context, post *domain.ForumPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ForumPost, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.ForumPost, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	AddAnswer(ctx context.Context, answer *domain.ForumAnswer) error
}

type forumRepository struct {
	db *sqlx.DB
}

func NewForumRepository(db *sqlx.DB) ForumRepository {
	return &forumRepository{db: db}
}

type forumPostRow struct {
	domain.ForumPost
	authorColumns
}

type forumAnswerRow struct {
	domain.ForumAnswer
	authorColumns
}

func (r *forumRepository) Create(ctx context.Context, post *domain.ForumPost) error {
	query := `
		INSERT INTO forum_posts (post_id, user_id, title, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query, post.ID, post.UserID, post.Title, post.Text).Scan(&post.CreatedAt)
}

func (r *forumRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ForumPost, error) {
	var row forumPostRow
	query := `
		SELECT p.*, ` + authorSelect + `
		FROM forum_posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.post_id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	posts := []domain.ForumPost{row.toDomain()}
	if err := r.loadAnswers(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *forumRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.ForumPost, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM forum_posts`); err != nil {
		return nil, 0, err
	}

	var rows []forumPostRow
	query := `
		SELECT p.*, ` + authorSelect + `
		FROM forum_posts p
		JOIN users u ON u.user_id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}

	posts := make([]domain.ForumPost, len(rows))
	for i, row := range rows {
		posts[i] = row.toDomain()
	}
	if err := r.loadAnswers(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *forumRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_posts WHERE post_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *forumRepository) AddAnswer(ctx context.Context, answer *domain.ForumAnswer) error {
	query := `
		INSERT INTO forum_answers (answer_id, post_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query, answer.ID, answer.PostID, answer.UserID, answer.Text).Scan(&answer.CreatedAt)
}

func (r *forumRepository) loadAnswers(ctx context.Context, posts []domain.ForumPost) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Answers = []domain.ForumAnswer{}
	}

	var rows []forumAnswerRow
	query := `
		SELECT a.*, ` + authorSelect + `
		FROM forum_answers a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.post_id = ANY($1::uuid[])
		ORDER BY a.created_at`
	if err := r.db.SelectContext(ctx, &rows, query, uuidArray(ids)); err != nil {
		return err
	}

	for _, row := range rows {
		answer := row.ForumAnswer
		answer.User = row.summary(answer.UserID)
		i := index[answer.PostID]
		posts[i].Answers = append(posts[i].Answers, answer)
	}
	return nil
}

func (row forumPostRow) toDomain() domain.ForumPost {
	post := row.ForumPost
	post.Author = row.summary(post.UserID)
	return post
}
