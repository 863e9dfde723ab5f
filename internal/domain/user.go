package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Surname      string    `json:"surname" db:"surname"`
	Nick         string    `json:"nick" db:"nick"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Image        *string   `json:"image,omitempty" db:"image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the public projection of a user embedded in other records.
type UserSummary struct {
	ID      uuid.UUID `json:"id" db:"user_id"`
	Name    string    `json:"name" db:"name"`
	Surname string    `json:"surname" db:"surname"`
	Nick    string    `json:"nick" db:"nick"`
	Image   *string   `json:"image,omitempty" db:"image"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Nick:    u.Nick,
		Image:   u.Image,
	}
}

type CreateUserInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Surname  string `json:"surname" form:"surname" validate:"required,max=100"`
	Nick     string `json:"nick" form:"nick" validate:"required,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UserRole string

const (
	RoleUser  UserRole = "ROLE_USER"
	RoleAdmin UserRole = "ROLE_ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) HasRole(requiredRole UserRole) bool {
	switch requiredRole {
	case RoleAdmin:
		return u.Role == string(RoleAdmin)
	case RoleUser:
		return u.Role == string(RoleUser) || u.Role == string(RoleAdmin)
	default:
		return false
	}
}
