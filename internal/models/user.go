package models

import "time"

// Роли и статусы — в том виде, в котором их ожидает фронтенд.
const (
	RoleAdmin      = "ADMIN"
	RolePublisher  = "PUBLISHER"
	RoleSubscriber = "SUBSCRIBER"

	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserLite — краткая карточка пользователя для вложенных ответов.
type UserLite struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email string  `json:"email,omitempty"`
}

func (u *User) Lite() UserLite {
	return UserLite{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u *User) IsPublisher() bool { return u.Role == RolePublisher }
func (u *User) IsActive() bool    { return u.Status == StatusActive }

// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Name     string `json:"name,omitempty" example:"Читатель"`
	Password string `json:"password" example:"secret123"`
	Role     string `json:"role" example:"SUBSCRIBER"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"secret123"`
}

// AuthResponse — единый ответ register/login: пользователь + токен сессии.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// swagger:model AdminUpdateUserRequest
type AdminUpdateUserRequest struct {
	Role   *string `json:"role,omitempty" example:"PUBLISHER"`
	Status *string `json:"status,omitempty" example:"SUSPENDED"`
}

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RolePublisher || r == RoleSubscriber
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusSuspended
}
