package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leander-social/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrNick(ctx context.Context, email, nick string) (bool, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error

	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
	FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, name, surname, nick, email, password_hash, role, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Surname, user.Nick, user.Email,
		user.PasswordHash, user.Role, user.Image,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if uniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailOrNick(ctx context.Context, email, nick string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) OR LOWER(nick) = LOWER($2))`
	err := r.db.GetContext(ctx, &exists, query, email, nick)
	return exists, err
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrUserNotFound)
}

func (r *userRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	query := `UPDATE users SET image = $2, updated_at = NOW() WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, id, image)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrUserNotFound)
}

// Follow records one row that serves as both sides of the relationship, so a
// single statement keeps followers and following consistent.
func (r *userRepository) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	return err
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	return err
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	return exists, err
}

func (r *userRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	users := []domain.UserSummary{}
	query := `
		SELECT u.user_id, u.name, u.surname, u.nick, u.image
		FROM follows f
		JOIN users u ON u.user_id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC`
	err := r.db.SelectContext(ctx, &users, query, userID)
	return users, err
}

func (r *userRepository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	users := []domain.UserSummary{}
	query := `
		SELECT u.user_id, u.name, u.surname, u.nick, u.image
		FROM follows f
		JOIN users u ON u.user_id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`
	err := r.db.SelectContext(ctx, &users, query, userID)
	return users, err
}

func (r *userRepository) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT follower_id FROM follows WHERE followed_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
